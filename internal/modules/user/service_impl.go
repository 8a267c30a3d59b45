package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apierror.New(apierror.ErrBadRequest, "email is required", nil)
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "check user", err.Error())
	}
	if exists {
		return nil, apierror.New(apierror.ErrConflict, "user already exists", nil)
	}

	u := &User{
		ID:    uuid.New(),
		Email: email,
		Name:  req.Name,
		Image: req.Image,
	}

	// Password is optional: externally authenticated shoppers register
	// without one.
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apierror.New(apierror.ErrInternalServer, "hash password", err.Error())
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "create user", err.Error())
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.ErrNotFound, "user not found", nil)
	}
	return u, nil
}

func (s *service) Find(ctx context.Context, email string) ([]*User, error) {
	return s.repo.Find(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) CheckExists(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	if err := s.repo.UpdateProfile(ctx, id, req); err != nil {
		return nil, apierror.New(apierror.ErrNotFound, "user not found", nil)
	}
	return s.repo.GetByID(ctx, id)
}
