package server

import (
	"net/http"

	"foodforall/pkg/types"
)

type submitFeedbackInput struct {
	FeedbackText string `json:"feedback_text" validate:"required"`
	Rating       *int   `json:"rating"`
}

func (s *Service) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	var input submitFeedbackInput
	if err := decodeJSON(r, &input); err != nil {
		s.respondFromError(w, err, "Failed to submit feedback")
		return
	}

	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		s.respondFromError(w, types.NewValidationError("Rating must be between 1 and 5"), "Failed to submit feedback")
		return
	}

	feedback := &types.Feedback{
		UserID:       identity.UserID,
		FeedbackText: input.FeedbackText,
		Rating:       input.Rating,
	}

	if err := s.feedback.Create(ctx, feedback); err != nil {
		s.respondFromError(w, err, "Failed to submit feedback")
		return
	}

	s.respondSuccess(w, http.StatusCreated, "Feedback submitted successfully", feedback)
}

func (s *Service) handleListAllFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := s.feedback.AllFeedback(r.Context())
	if err != nil {
		s.respondFromError(w, err, "Failed to retrieve feedback")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}

func (s *Service) handleListMyFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	feedback, err := s.feedback.FeedbackByUser(ctx, identity.UserID)
	if err != nil {
		s.respondFromError(w, err, "Failed to retrieve feedback")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}
