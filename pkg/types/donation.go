package types

import "time"

type DonationStatus string

const (
	DonationStatusAvailable DonationStatus = "available"
	DonationStatusReserved  DonationStatus = "reserved"
	DonationStatusClaimed   DonationStatus = "claimed"
)

func (s DonationStatus) Valid() bool {
	switch s {
	case DonationStatusAvailable, DonationStatusReserved, DonationStatusClaimed:
		return true
	}
	return false
}

type Donation struct {
	ID            string         `db:"id" json:"donation_id"`
	FoodItem      string         `db:"food_item" json:"food_item"`
	Quantity      int            `db:"quantity" json:"quantity"`
	ExpiryDate    time.Time      `db:"expiry_date" json:"expiry_date"`
	Description   *string        `db:"description" json:"description,omitempty"`
	Status        DonationStatus `db:"status" json:"status"`
	DonorID       string         `db:"donor_id" json:"donor_id"`
	DonationImage *string        `db:"donation_image" json:"donation_image,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// DonationWithDonor is the listing shape, joined against users.
type DonationWithDonor struct {
	Donation
	DonorName string `db:"donor_name" json:"donor_name"`
}

// DonationFilter narrows List queries. Zero values mean no filtering.
type DonationFilter struct {
	Status  DonationStatus `form:"status"`
	DonorID string         `form:"donor_id"`
}
