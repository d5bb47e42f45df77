package server

import (
	"net/http"
	"time"

	"foodforall/internal/utils"
	"foodforall/pkg/types"

	"github.com/alexedwards/flow"
)

type createDonationForm struct {
	FoodItem    string `form:"food_item"`
	Quantity    int    `form:"quantity"`
	ExpiryDate  string `form:"expiry_date"`
	Description string `form:"description"`
}

func (s *Service) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := s.identityFromContext(ctx)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondFromError(w, types.NewValidationError("Invalid multipart form"), "Failed to create donation")
		return
	}

	var input createDonationForm
	if err := decoder.Decode(&input, r.MultipartForm.Value); err != nil {
		s.respondFromError(w, types.NewValidationError("Invalid form fields"), "Failed to create donation")
		return
	}

	if input.FoodItem == "" || input.Quantity == 0 || input.ExpiryDate == "" {
		s.respondFromError(w, types.NewValidationError("Food item, quantity, and expiry date are required"), "Failed to create donation")
		return
	}

	if input.Quantity <= 0 {
		s.respondFromError(w, types.NewValidationError("Quantity must be a positive number"), "Failed to create donation")
		return
	}

	expiryDate, err := time.Parse("2006-01-02", input.ExpiryDate)
	if err != nil {
		s.respondFromError(w, types.NewValidationError("Invalid expiry date format (YYYY-MM-DD)"), "Failed to create donation")
		return
	}

	if !expiryDate.After(time.Now()) {
		s.respondFromError(w, types.NewValidationError("Expiry date must be in the future"), "Failed to create donation")
		return
	}

	imageKey, err := s.saveImage(r, "donation_image", "donation_images")
	if err != nil {
		s.respondFromError(w, err, "Failed to create donation")
		return
	}

	donation := &types.Donation{
		FoodItem:      input.FoodItem,
		Quantity:      input.Quantity,
		ExpiryDate:    expiryDate,
		DonorID:       identity.UserID,
		DonationImage: imageKey,
	}
	if input.Description != "" {
		donation.Description = utils.StringPtr(input.Description)
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		s.respondFromError(w, err, "Failed to create donation")
		return
	}

	s.imageURL(donation.DonationImage)
	s.respondSuccess(w, http.StatusCreated, "Donation created successfully", donation)
}

func (s *Service) handleListDonations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filter types.DonationFilter
	if err := decoder.Decode(&filter, r.URL.Query()); err != nil {
		s.respondFromError(w, types.NewValidationError("Invalid filter parameters"), "Failed to retrieve donations")
		return
	}

	if filter.Status != "" && !filter.Status.Valid() {
		s.respondFromError(w, types.NewValidationError("Status must be one of: available, reserved, claimed"), "Failed to retrieve donations")
		return
	}

	donations, err := s.donations.Donations(ctx, filter)
	if err != nil {
		s.respondFromError(w, err, "Failed to retrieve donations")
		return
	}

	for _, donation := range donations {
		s.imageURL(donation.DonationImage)
	}

	s.respondSuccess(w, http.StatusOK, "Donations retrieved successfully", donations)
}

func (s *Service) handleGetDonation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donation, err := s.donations.DonationWithDonor(ctx, flow.Param(ctx, "id"))
	if err != nil {
		s.respondFromError(w, err, "Failed to retrieve donation")
		return
	}

	s.imageURL(donation.DonationImage)
	s.respondSuccess(w, http.StatusOK, "Donation retrieved successfully", donation)
}

type updateDonationInput struct {
	Status string `json:"status" validate:"required"`
}

func (s *Service) handleUpdateDonationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input updateDonationInput
	if err := decodeJSON(r, &input); err != nil {
		s.respondFromError(w, err, "Failed to update donation status")
		return
	}

	status := types.DonationStatus(input.Status)
	if !status.Valid() {
		s.respondFromError(w, types.NewValidationError("Status must be one of: available, reserved, claimed"), "Failed to update donation status")
		return
	}

	donation, err := s.donations.UpdateStatus(ctx, flow.Param(ctx, "id"), status)
	if err != nil {
		s.respondFromError(w, err, "Failed to update donation status")
		return
	}

	s.imageURL(donation.DonationImage)
	s.respondSuccess(w, http.StatusOK, "Donation status updated successfully", donation)
}
