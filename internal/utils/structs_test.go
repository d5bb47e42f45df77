package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRow struct {
	ID      string `db:"id"`
	Name    string `db:"full_name"`
	Ignored string `db:"-"`
	NoTag   string
}

func TestStructTagValues(t *testing.T) {
	columns := StructTagValues(&taggedRow{})
	assert.Equal(t, []string{"id", "full_name"}, columns)

	// Value receivers work too.
	assert.Equal(t, columns, StructTagValues(taggedRow{}))
}

func TestStructToMap(t *testing.T) {
	row := &taggedRow{ID: "abc", Name: "Donor One", Ignored: "x", NoTag: "y"}

	m := StructToMap(row)
	require.Len(t, m, 2)
	assert.Equal(t, "abc", m["id"])
	assert.Equal(t, "Donor One", m["full_name"])
}

func TestPrefixSliceOfStrings(t *testing.T) {
	out := PrefixSliceOfStrings("d", []string{"id", "food_item", "donor_id"}, "donor_id")
	assert.Equal(t, []string{"d.id", "d.food_item"}, out)

	assert.Empty(t, PrefixSliceOfStrings("d", nil))
}

func TestErrorWrapOrNil(t *testing.T) {
	assert.NoError(t, ErrorWrapOrNil(nil, "context"))

	base := errors.New("boom")
	wrapped := ErrorWrapOrNil(base, "fetch row")
	require.Error(t, wrapped)
	assert.Equal(t, "fetch row: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)

	assert.Equal(t, base, ErrorWrapOrNil(base, ""))
}
