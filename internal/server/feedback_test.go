package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodforall/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedback(t *testing.T) {
	post := func(t *testing.T, s *Service, body string) *httptest.ResponseRecorder {
		t.Helper()

		req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(body))
		req.Header.Set("Authorization", bearerFor(t, s, "consumer_1", types.RoleConsumer))
		return s.serve(t, req)
	}

	t.Run("success with rating", func(t *testing.T) {
		s, stores := newTestService(t)

		rec := post(t, s, `{"feedback_text":"Great service","rating":5}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		created := stores.feedback.created
		require.NotNil(t, created)
		assert.Equal(t, "consumer_1", created.UserID)
		assert.Equal(t, "Great service", created.FeedbackText)
		require.NotNil(t, created.Rating)
		assert.Equal(t, 5, *created.Rating)
	})

	t.Run("rating is optional", func(t *testing.T) {
		s, stores := newTestService(t)

		rec := post(t, s, `{"feedback_text":"Great service"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Nil(t, stores.feedback.created.Rating)
	})

	t.Run("rating out of range", func(t *testing.T) {
		s, _ := newTestService(t)

		rec := post(t, s, `{"feedback_text":"Great service","rating":6}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Rating must be between 1 and 5", decodeBody(t, rec).Message)
	})

	t.Run("missing text", func(t *testing.T) {
		s, _ := newTestService(t)

		rec := post(t, s, `{"rating":3}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListAllFeedbackRequiresAdmin(t *testing.T) {
	s, _ := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/feedback", nil)
	req.Header.Set("Authorization", bearerFor(t, s, "consumer_1", types.RoleConsumer))
	rec := s.serve(t, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/feedback", nil)
	req.Header.Set("Authorization", bearerFor(t, s, "admin_1", types.RoleAdmin))
	rec = s.serve(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
