package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database.
type UserDB struct {
	UserID       uuid.UUID `json:"_id" db:"user_id"`             // Primary key
	FirstName    string    `json:"first_name" db:"first_name"`   // First name
	LastName     string    `json:"last_name" db:"last_name"`     // Last name
	Location     string    `json:"location" db:"location"`       // Free-form location
	Description  string    `json:"description" db:"description"` // Free-form description
	Occupation   string    `json:"occupation" db:"occupation"`   // Free-form occupation
	LoginName    string    `json:"login_name" db:"login_name"`   // Unique login name
	PasswordHash string    `json:"-" db:"password_hash"`         // Hashed credential, never serialized
	CreatedAt    time.Time `json:"-" db:"created_at"`            // Creation timestamp
}

// UserPublic is the restricted projection of a user that is safe to expose
// in listings and as a comment author: id and name fields only.
type UserPublic struct {
	UserID    uuid.UUID `json:"_id" db:"user_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
}

// UserDetail is the single-user view: all profile fields, no credentials.
type UserDetail struct {
	UserID      uuid.UUID `json:"_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Occupation  string    `json:"occupation"`
}

// Detail projects a full user record to its credential-free view.
func (u *UserDB) Detail() UserDetail {
	return UserDetail{
		UserID:      u.UserID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		Description: u.Description,
		Occupation:  u.Occupation,
	}
}
