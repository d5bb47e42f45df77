package types

// LeaderboardEntry is a read-only aggregate of a donor's donations.
type LeaderboardEntry struct {
	UserID         string  `db:"user_id" json:"user_id"`
	FullName       string  `db:"full_name" json:"full_name"`
	ProfilePicture *string `db:"profile_picture" json:"profile_picture,omitempty"`
	DonationCount  int     `db:"donation_count" json:"donation_count"`
	TotalQuantity  int     `db:"total_quantity" json:"total_quantity"`
}
