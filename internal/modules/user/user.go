package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a shopper profile. Accounts created through an external identity
// provider have an empty PasswordHash.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Image        string    `json:"image,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	DOB          string    `json:"dob,omitempty"`
	Website      string    `json:"website,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for creating a new user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
	Image    string `json:"image,omitempty"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Image   string `json:"image"`
	Phone   string `json:"phone"`
	Gender  string `json:"gender"`
	DOB     string `json:"dob"`
	Website string `json:"website"`
}
