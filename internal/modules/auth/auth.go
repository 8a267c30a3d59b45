package auth

import "context"

// Identity is the authenticated caller extracted from a session token.
type Identity struct {
	Email string
	Admin bool
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	// IssueToken authenticates the email (verifying the password when the
	// account carries one) and returns a signed session token.
	IssueToken(ctx context.Context, email, password string) (string, error)
}
