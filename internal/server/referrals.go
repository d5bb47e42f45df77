package server

import (
	"errors"
	"net/http"

	"foodforall/internal/utils"
	"foodforall/pkg/types"
)

type createReferralInput struct {
	ReferredEmail string `json:"referred_email" validate:"required,email"`
	ReferredName  string `json:"referred_name"`
	Message       string `json:"message"`
}

func (s *Service) handleCreateReferral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	var input createReferralInput
	if err := decodeJSON(r, &input); err != nil {
		s.respondFromError(w, err, "Failed to create referral")
		return
	}

	_, err := s.users.UserByEmail(ctx, input.ReferredEmail)
	if err == nil {
		s.respondFromError(w, types.NewDuplicateError("This email is already registered"), "Failed to create referral")
		return
	}
	if !errors.Is(err, types.ErrUserNotFound) {
		s.respondFromError(w, err, "Failed to create referral")
		return
	}

	exists, err := s.referrals.ExistsForReferrer(ctx, identity.UserID, input.ReferredEmail)
	if err != nil {
		s.respondFromError(w, err, "Failed to create referral")
		return
	}
	if exists {
		s.respondFromError(w, types.NewDuplicateError("You have already referred this email"), "Failed to create referral")
		return
	}

	referral := &types.Referral{
		ReferrerID:    identity.UserID,
		ReferredEmail: input.ReferredEmail,
	}
	if input.ReferredName != "" {
		referral.ReferredName = utils.StringPtr(input.ReferredName)
	}
	if input.Message != "" {
		referral.Message = utils.StringPtr(input.Message)
	}

	if err := s.referrals.Create(ctx, referral); err != nil {
		s.respondFromError(w, err, "Failed to create referral")
		return
	}

	s.respondSuccess(w, http.StatusCreated, "Referral created successfully", referral)
}

func (s *Service) handleListMyReferrals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	referrals, err := s.referrals.ReferralsByReferrer(ctx, identity.UserID)
	if err != nil {
		s.respondFromError(w, err, "Failed to retrieve referrals")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Referrals retrieved successfully", referrals)
}

func (s *Service) handleListAllReferrals(w http.ResponseWriter, r *http.Request) {
	referrals, err := s.referrals.AllReferrals(r.Context())
	if err != nil {
		s.respondFromError(w, err, "Failed to retrieve all referrals")
		return
	}

	s.respondSuccess(w, http.StatusOK, "All referrals retrieved successfully", referrals)
}
