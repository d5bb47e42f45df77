package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest(quantity int) *Request {
	return &Request{
		ID:                "request_1",
		DonationID:        "donation_1",
		RequesterID:       "consumer_1",
		QuantityRequested: quantity,
		Status:            RequestStatusPending,
	}
}

func availableDonation(quantity int) *Donation {
	return &Donation{
		ID:       "donation_1",
		FoodItem: "Rice",
		Quantity: quantity,
		Status:   DonationStatusAvailable,
		DonorID:  "donor_1",
	}
}

func TestRequestAccept(t *testing.T) {
	t.Run("partial quantity leaves donation available", func(t *testing.T) {
		request := pendingRequest(3)
		donation := availableDonation(5)

		outcome, err := request.Accept(donation, "donor_1")
		require.NoError(t, err)

		assert.Equal(t, 2, outcome.RemainingQuantity)
		assert.Equal(t, DonationStatusAvailable, outcome.DonationStatus)
	})

	t.Run("exact quantity claims the donation", func(t *testing.T) {
		request := pendingRequest(5)
		donation := availableDonation(5)

		outcome, err := request.Accept(donation, "donor_1")
		require.NoError(t, err)

		assert.Equal(t, 0, outcome.RemainingQuantity)
		assert.Equal(t, DonationStatusClaimed, outcome.DonationStatus)
	})

	t.Run("over-request fails validation", func(t *testing.T) {
		request := pendingRequest(6)
		donation := availableDonation(5)

		_, err := request.Accept(donation, "donor_1")
		require.Error(t, err)

		assert.Equal(t, ErrorKindValidation, KindOf(err))
		assert.EqualError(t, err, "Requested quantity exceeds available quantity")
	})

	t.Run("only the owning donor can accept", func(t *testing.T) {
		request := pendingRequest(3)
		donation := availableDonation(5)

		_, err := request.Accept(donation, "donor_2")
		require.Error(t, err)

		assert.Equal(t, ErrorKindAuthorization, KindOf(err))
		assert.EqualError(t, err, "You can only accept requests for your own donations")
	})

	t.Run("approved request cannot be accepted again", func(t *testing.T) {
		request := pendingRequest(3)
		request.Status = RequestStatusApproved
		donation := availableDonation(5)

		_, err := request.Accept(donation, "donor_1")
		require.Error(t, err)

		assert.Equal(t, ErrorKindInvalidState, KindOf(err))
		assert.EqualError(t, err, "Request is already approved")
	})

	t.Run("rejected request cannot be accepted", func(t *testing.T) {
		request := pendingRequest(3)
		request.Status = RequestStatusRejected
		donation := availableDonation(5)

		_, err := request.Accept(donation, "donor_1")
		require.Error(t, err)

		assert.EqualError(t, err, "Request is already rejected")
	})

	t.Run("ownership is checked before status", func(t *testing.T) {
		request := pendingRequest(3)
		request.Status = RequestStatusApproved
		donation := availableDonation(5)

		_, err := request.Accept(donation, "donor_2")
		require.Error(t, err)

		assert.Equal(t, ErrorKindAuthorization, KindOf(err))
	})
}

// Two sequential accepts against the same donation must drain it exactly
// once: the second accept recomputes from the decremented quantity.
func TestRequestAcceptSequential(t *testing.T) {
	donation := availableDonation(5)

	first := pendingRequest(3)
	outcome, err := first.Accept(donation, "donor_1")
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.RemainingQuantity)

	donation.Quantity = outcome.RemainingQuantity
	donation.Status = outcome.DonationStatus

	second := pendingRequest(3)
	second.ID = "request_2"
	_, err = second.Accept(donation, "donor_1")
	require.Error(t, err)
	assert.EqualError(t, err, "Requested quantity exceeds available quantity")

	third := pendingRequest(2)
	third.ID = "request_3"
	outcome, err = third.Accept(donation, "donor_1")
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.RemainingQuantity)
	assert.Equal(t, DonationStatusClaimed, outcome.DonationStatus)
}

func TestRequestReject(t *testing.T) {
	t.Run("pending request can be rejected", func(t *testing.T) {
		request := pendingRequest(3)
		donation := availableDonation(5)

		require.NoError(t, request.Reject(donation, "donor_1"))
	})

	t.Run("only the owning donor can reject", func(t *testing.T) {
		request := pendingRequest(3)
		donation := availableDonation(5)

		err := request.Reject(donation, "donor_2")
		require.Error(t, err)

		assert.Equal(t, ErrorKindAuthorization, KindOf(err))
	})

	t.Run("settled request cannot be rejected", func(t *testing.T) {
		request := pendingRequest(3)
		request.Status = RequestStatusApproved
		donation := availableDonation(5)

		err := request.Reject(donation, "donor_1")
		require.Error(t, err)

		assert.Equal(t, ErrorKindInvalidState, KindOf(err))
		assert.EqualError(t, err, "Request is already approved")
	})
}
