package domain

import "time"

// User is the domain model for operators who sign in to manage requests.
// Email doubles as the login identifier and is immutable after registration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
