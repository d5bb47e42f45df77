package server

import (
	"net/http"

	"foodforall/internal/utils"
	"foodforall/pkg/types"

	"github.com/alexedwards/flow"
)

type createRequestInput struct {
	DonationID        string `json:"donation_id" validate:"required"`
	QuantityRequested int    `json:"quantity_requested" validate:"required"`
	Purpose           string `json:"purpose"`
}

func (s *Service) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	var input createRequestInput
	if err := decodeJSON(r, &input); err != nil {
		s.respondFromError(w, err, "Failed to create request")
		return
	}

	if input.QuantityRequested <= 0 {
		s.respondFromError(w, types.NewValidationError("Quantity must be a positive number"), "Failed to create request")
		return
	}

	donation, err := s.donations.Donation(ctx, input.DonationID)
	if err != nil || donation.Status != types.DonationStatusAvailable {
		s.respondFromError(w, types.NewNotFoundError("Donation not found or not available"), "Failed to create request")
		return
	}

	// Snapshot check only. Pending requests may collectively exceed the
	// available quantity; the accept transaction re-checks under the row
	// lock and is the authoritative guard.
	if input.QuantityRequested > donation.Quantity {
		s.respondFromError(w, types.NewValidationError("Requested quantity exceeds available quantity"), "Failed to create request")
		return
	}

	request := &types.Request{
		DonationID:        input.DonationID,
		RequesterID:       identity.UserID,
		QuantityRequested: input.QuantityRequested,
	}
	if input.Purpose != "" {
		request.Purpose = utils.StringPtr(input.Purpose)
	}

	if err := s.requests.Create(ctx, request); err != nil {
		s.respondFromError(w, err, "Failed to create request")
		return
	}

	s.respondSuccess(w, http.StatusCreated, "Request created successfully", map[string]any{
		"request": request,
	})
}

func (s *Service) handleListPendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	status := types.RequestStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = types.RequestStatusPending
	}

	filter := types.RequestFilter{Status: status}

	// Donors only see requests against their own donations.
	if identity.Role == types.RoleDonor {
		filter.DonorID = identity.UserID
	}

	page, limit := paginationParams(r)

	requests, total, err := s.requests.Requests(ctx, filter, page, limit)
	if err != nil {
		s.respondFromError(w, err, "Failed to retrieve requests")
		return
	}

	for _, request := range requests {
		s.imageURL(request.DonationImage)
	}

	s.respondSuccess(w, http.StatusOK, "Requests retrieved successfully", map[string]any{
		"requests":   requests,
		"pagination": NewPagination(total, page, limit),
	})
}

func (s *Service) handleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	requestID := flow.Param(ctx, "id")
	if err := s.requests.Accept(ctx, requestID, identity.UserID); err != nil {
		s.respondFromError(w, err, "Failed to accept request")
		return
	}

	s.logger.WithFields(map[string]any{
		"request_id": requestID,
		"donor_id":   identity.UserID,
	}).Info("request accepted")

	s.respondSuccess(w, http.StatusOK, "Request accepted successfully", nil)
}

func (s *Service) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	requestID := flow.Param(ctx, "id")
	if err := s.requests.Reject(ctx, requestID, identity.UserID); err != nil {
		s.respondFromError(w, err, "Failed to reject request")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Request rejected successfully", nil)
}

func (s *Service) handleListMyRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	filter := types.RequestFilter{
		Status:      types.RequestStatus(r.URL.Query().Get("status")),
		RequesterID: identity.UserID,
	}

	page, limit := paginationParams(r)

	requests, total, err := s.requests.Requests(ctx, filter, page, limit)
	if err != nil {
		s.respondFromError(w, err, "Failed to retrieve requests")
		return
	}

	for _, request := range requests {
		s.imageURL(request.DonationImage)
	}

	s.respondSuccess(w, http.StatusOK, "Requests retrieved successfully", map[string]any{
		"requests":   requests,
		"pagination": NewPagination(total, page, limit),
	})
}
