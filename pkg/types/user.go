package types

import "time"

type Role string

const (
	RoleDonor    Role = "donor"
	RoleConsumer Role = "consumer"
	RoleNGO      Role = "ngo"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleConsumer, RoleNGO, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             string    `db:"id" json:"user_id"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Role           Role      `db:"role" json:"role"`
	FullName       string    `db:"full_name" json:"full_name"`
	PhoneNumber    string    `db:"phone_number" json:"phone_number"`
	Address        string    `db:"address" json:"address"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateUserProfile carries the editable profile fields. Nil means leave the
// column untouched.
type UpdateUserProfile struct {
	FullName    *string
	PhoneNumber *string
	Address     *string
}
