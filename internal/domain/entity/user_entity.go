package entity

import (
	"time"
)

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in Password field.
//
// VerificationCode is assigned once at registration; IsVerified only ever
// moves from false to true.
type User struct {
	ID               int64
	Name             string
	Email            string
	Password         string
	VerificationCode string
	IsVerified       bool
	CreatedAt        time.Time
}
