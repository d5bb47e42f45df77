package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodforall/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	seed := func(stores *testStores) {
		stores.users.users["donor@example.com"] = &types.User{
			ID:       "user_1",
			Email:    "donor@example.com",
			FullName: "Donor One",
			Role:     types.RoleDonor,
		}
	}

	t.Run("own profile", func(t *testing.T) {
		s, stores := newTestService(t)
		seed(stores)

		req := httptest.NewRequest(http.MethodGet, "/api/user/profile/user_1", nil)
		req.Header.Set("Authorization", bearerFor(t, s, "user_1", types.RoleDonor))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var user types.User
		require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &user))
		assert.Equal(t, "Donor One", user.FullName)
	})

	t.Run("password hash never leaves the API", func(t *testing.T) {
		s, stores := newTestService(t)
		seed(stores)
		stores.users.users["donor@example.com"].PasswordHash = "$2a$10$secret"

		req := httptest.NewRequest(http.MethodGet, "/api/user/profile/user_1", nil)
		req.Header.Set("Authorization", bearerFor(t, s, "user_1", types.RoleDonor))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret")
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("someone else's profile is forbidden", func(t *testing.T) {
		s, stores := newTestService(t)
		seed(stores)

		req := httptest.NewRequest(http.MethodGet, "/api/user/profile/user_1", nil)
		req.Header.Set("Authorization", bearerFor(t, s, "user_2", types.RoleConsumer))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "You can only view your own profile", decodeBody(t, rec).Message)
	})

	t.Run("admin can view any profile", func(t *testing.T) {
		s, stores := newTestService(t)
		seed(stores)

		req := httptest.NewRequest(http.MethodGet, "/api/user/profile/user_1", nil)
		req.Header.Set("Authorization", bearerFor(t, s, "admin_1", types.RoleAdmin))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	seed := func(stores *testStores) {
		stores.users.users["donor@example.com"] = &types.User{
			ID:          "user_1",
			Email:       "donor@example.com",
			FullName:    "Donor One",
			PhoneNumber: "5551234567",
			Role:        types.RoleDonor,
		}
	}

	t.Run("partial update", func(t *testing.T) {
		s, stores := newTestService(t)
		seed(stores)

		req := httptest.NewRequest(http.MethodPut, "/api/user/profile/user_1",
			strings.NewReader(`{"full_name":"Donor Renamed"}`))
		req.Header.Set("Authorization", bearerFor(t, s, "user_1", types.RoleDonor))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusOK, rec.Code)

		updated := stores.users.users["donor@example.com"]
		assert.Equal(t, "Donor Renamed", updated.FullName)
		assert.Equal(t, "5551234567", updated.PhoneNumber)
	})

	t.Run("empty update", func(t *testing.T) {
		s, stores := newTestService(t)
		seed(stores)

		req := httptest.NewRequest(http.MethodPut, "/api/user/profile/user_1", strings.NewReader(`{}`))
		req.Header.Set("Authorization", bearerFor(t, s, "user_1", types.RoleDonor))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No profile fields to update", decodeBody(t, rec).Message)
	})

	t.Run("bad phone number", func(t *testing.T) {
		s, stores := newTestService(t)
		seed(stores)

		req := httptest.NewRequest(http.MethodPut, "/api/user/profile/user_1",
			strings.NewReader(`{"phone_number":"12ab"}`))
		req.Header.Set("Authorization", bearerFor(t, s, "user_1", types.RoleDonor))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUploadProfilePicture(t *testing.T) {
	imageUpload := func(t *testing.T, filename string) (*bytes.Buffer, string) {
		t.Helper()

		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("profile_picture", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		return &buf, writer.FormDataContentType()
	}

	t.Run("success", func(t *testing.T) {
		s, _ := newTestService(t)

		body, contentType := imageUpload(t, "me.png")
		req := httptest.NewRequest(http.MethodPost, "/api/user/upload-profile-picture/user_1", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", bearerFor(t, s, "user_1", types.RoleDonor))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var data struct {
			ProfilePicture string `json:"profile_picture"`
		}
		require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &data))
		assert.True(t, strings.HasPrefix(data.ProfilePicture, "/uploads/profile_pictures/"))
		assert.True(t, strings.HasSuffix(data.ProfilePicture, "_me.png"))
	})

	t.Run("rejects non-image extension", func(t *testing.T) {
		s, _ := newTestService(t)

		body, contentType := imageUpload(t, "script.sh")
		req := httptest.NewRequest(http.MethodPost, "/api/user/upload-profile-picture/user_1", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", bearerFor(t, s, "user_1", types.RoleDonor))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Image must be a png, jpg, jpeg or gif file", decodeBody(t, rec).Message)
	})

	t.Run("missing file", func(t *testing.T) {
		s, _ := newTestService(t)

		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.WriteField("unrelated", "x"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/user/upload-profile-picture/user_1", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", bearerFor(t, s, "user_1", types.RoleDonor))
		rec := s.serve(t, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
