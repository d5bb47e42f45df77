package types

import "time"

type ReferralStatus string

const (
	ReferralStatusPending ReferralStatus = "pending"

	// Reserved for externally driven updates (the referred person signing
	// up, or declining); no operation here transitions to them.
	ReferralStatusRegistered ReferralStatus = "registered"
	ReferralStatusDeclined   ReferralStatus = "declined"
)

type Referral struct {
	ID            string         `db:"id" json:"referral_id"`
	ReferrerID    string         `db:"referrer_id" json:"referrer_id"`
	ReferredEmail string         `db:"referred_email" json:"referred_email"`
	ReferredName  *string        `db:"referred_name" json:"referred_name,omitempty"`
	Message       *string        `db:"message" json:"message,omitempty"`
	Status        ReferralStatus `db:"status" json:"status"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// ReferralWithReferrer is the admin listing shape, joined against users.
type ReferralWithReferrer struct {
	Referral
	ReferrerName  string `db:"referrer_name" json:"referrer_name"`
	ReferrerEmail string `db:"referrer_email" json:"referrer_email"`
}
