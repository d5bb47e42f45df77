package server

import (
	"net/http"

	"foodforall/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	userID := flow.Param(ctx, "id")
	if identity.UserID != userID && identity.Role != types.RoleAdmin {
		s.respondFromError(w, types.NewAuthorizationError("You can only view your own profile"), "Failed to load profile")
		return
	}

	user, err := s.users.User(ctx, userID)
	if err != nil {
		s.respondFromError(w, err, "Failed to load profile")
		return
	}

	s.imageURL(user.ProfilePicture)
	s.respondSuccess(w, http.StatusOK, "Profile loaded", user)
}

type updateProfileInput struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

func (s *Service) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	userID := flow.Param(ctx, "id")
	if identity.UserID != userID && identity.Role != types.RoleAdmin {
		s.respondFromError(w, types.NewAuthorizationError("You can only edit your own profile"), "Failed to update profile")
		return
	}

	var input updateProfileInput
	if err := decodeJSON(r, &input); err != nil {
		s.respondFromError(w, err, "Failed to update profile")
		return
	}

	if input.FullName == nil && input.PhoneNumber == nil && input.Address == nil {
		s.respondFromError(w, types.NewValidationError("No profile fields to update"), "Failed to update profile")
		return
	}

	if input.PhoneNumber != nil && !phonePattern.MatchString(*input.PhoneNumber) {
		s.respondFromError(w, types.NewValidationError("Invalid phone number format"), "Failed to update profile")
		return
	}

	user, err := s.users.UpdateProfile(ctx, userID, &types.UpdateUserProfile{
		FullName:    input.FullName,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
	})
	if err != nil {
		s.respondFromError(w, err, "Failed to update profile")
		return
	}

	s.imageURL(user.ProfilePicture)
	s.respondSuccess(w, http.StatusOK, "Profile updated successfully", user)
}

func (s *Service) handleUploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	userID := flow.Param(ctx, "id")
	if identity.UserID != userID && identity.Role != types.RoleAdmin {
		s.respondFromError(w, types.NewAuthorizationError("You can only edit your own profile"), "Failed to upload profile picture")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondFromError(w, types.NewValidationError("Invalid multipart form"), "Failed to upload profile picture")
		return
	}

	key, err := s.saveImage(r, "profile_picture", "profile_pictures")
	if err != nil {
		s.respondFromError(w, err, "Failed to upload profile picture")
		return
	}

	if key == nil {
		s.respondFromError(w, types.NewValidationError("profile_picture file is required"), "Failed to upload profile picture")
		return
	}

	if err := s.users.SetProfilePicture(ctx, userID, *key); err != nil {
		s.respondFromError(w, err, "Failed to upload profile picture")
		return
	}

	url := s.uploads.PublicURL(*key)
	s.respondSuccess(w, http.StatusOK, "Profile picture uploaded successfully", map[string]any{
		"profile_picture": url,
	})
}
