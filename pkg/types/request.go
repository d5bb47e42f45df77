package types

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"

	// Reserved in the schema for an external trigger; nothing in this
	// service transitions a request here.
	RequestStatusCompleted RequestStatus = "completed"
)

type Request struct {
	ID                string        `db:"id" json:"request_id"`
	DonationID        string        `db:"donation_id" json:"donation_id"`
	RequesterID       string        `db:"requester_id" json:"requester_id"`
	QuantityRequested int           `db:"quantity_requested" json:"quantity_requested"`
	Purpose           *string       `db:"purpose" json:"purpose,omitempty"`
	Status            RequestStatus `db:"status" json:"status"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}

// RequestWithDetails is the listing shape, joined against the requester and
// the donation being claimed.
type RequestWithDetails struct {
	Request
	RequesterName  string  `db:"requester_name" json:"requester_name"`
	RequesterEmail string  `db:"requester_email" json:"requester_email"`
	FoodItem       string  `db:"food_item" json:"food_item"`
	DonorID        string  `db:"donor_id" json:"donor_id"`
	DonorName      string  `db:"donor_name" json:"donor_name"`
	DonationImage  *string `db:"donation_image" json:"donation_image,omitempty"`
}

// RequestFilter narrows request listings. DonorID restricts to requests
// against that donor's donations.
type RequestFilter struct {
	Status      RequestStatus
	RequesterID string
	DonorID     string
}

// AcceptOutcome is the donation-side effect of approving a request.
type AcceptOutcome struct {
	RemainingQuantity int
	DonationStatus    DonationStatus
}

// Accept validates the pending → approved transition against the current
// donation state and computes the quantity decrement. It performs no I/O:
// callers must run it on a row-locked donation snapshot and apply the
// outcome within the same transaction.
func (r *Request) Accept(donation *Donation, actingUserID string) (*AcceptOutcome, error) {
	if donation.DonorID != actingUserID {
		return nil, NewAuthorizationError("You can only accept requests for your own donations")
	}

	if r.Status != RequestStatusPending {
		return nil, NewInvalidStateErrorf("Request is already %s", r.Status)
	}

	if r.QuantityRequested > donation.Quantity {
		return nil, NewValidationError("Requested quantity exceeds available quantity")
	}

	outcome := &AcceptOutcome{
		RemainingQuantity: donation.Quantity - r.QuantityRequested,
		DonationStatus:    donation.Status,
	}
	if outcome.RemainingQuantity <= 0 {
		outcome.RemainingQuantity = 0
		outcome.DonationStatus = DonationStatusClaimed
	}

	return outcome, nil
}

// Reject validates the pending → rejected transition. No quantity effect.
func (r *Request) Reject(donation *Donation, actingUserID string) error {
	if donation.DonorID != actingUserID {
		return NewAuthorizationError("You can only reject requests for your own donations")
	}

	if r.Status != RequestStatusPending {
		return NewInvalidStateErrorf("Request is already %s", r.Status)
	}

	return nil
}
