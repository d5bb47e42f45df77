package server

import (
	"errors"
	"net/http"
	"regexp"

	"foodforall/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type registerInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=4"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Role        string `json:"role" validate:"required"`
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input registerInput
	if err := decodeJSON(r, &input); err != nil {
		s.respondFromError(w, err, "Registration failed")
		return
	}

	if !phonePattern.MatchString(input.PhoneNumber) {
		s.respondFromError(w, types.NewValidationError("Invalid phone number format"), "Registration failed")
		return
	}

	role := types.Role(input.Role)
	if !role.Valid() {
		s.respondFromError(w, types.NewValidationErrorf("Role must be one of: donor, consumer, ngo, admin"), "Registration failed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.respondFromError(w, err, "Registration failed")
		return
	}

	user := &types.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.respondFromError(w, err, "Registration failed")
		return
	}

	s.logger.WithFields(map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user registered")

	s.respondSuccess(w, http.StatusCreated, "Registered successfully", nil)
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input loginInput
	if err := decodeJSON(r, &input); err != nil {
		s.respondFromError(w, err, "Login failed")
		return
	}

	user, err := s.users.UserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.respondFromError(w, types.ErrInvalidCredentials, "Login failed")
			return
		}
		s.respondFromError(w, err, "Login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.respondFromError(w, types.ErrInvalidCredentials, "Login failed")
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.respondFromError(w, err, "Login failed")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Login successful", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
		"token":   token,
	})
}
