package user

import "context"

// Repository defines data access for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Find returns the users matching the email, or all users when it is empty.
	Find(ctx context.Context, email string) ([]*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) error
}
