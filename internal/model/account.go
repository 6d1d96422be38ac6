package model

import "time"

// Account represents a registered user of the API.
// This is a pure domain model with no database-specific dependencies or tags.
// PasswordHash is never serialized.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
}
