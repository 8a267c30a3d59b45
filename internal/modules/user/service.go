package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	Find(ctx context.Context, email string) ([]*User, error)
	CheckExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
}
