package entity

import "time"

// Valid roles for User.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a storefront account (shopper or admin).
type User struct {
	ID               string
	Name             string
	Email            string
	Mobile           string
	PasswordHash     string // bcrypt hash, never plaintext in the domain after persisting
	Role             string // customer, admin
	Status           string // active, inactive, suspended
	ResetTokenDigest string // SHA-256 hex of the outstanding password-reset token, empty when none
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
