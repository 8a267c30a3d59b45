package wishlist

import (
	"context"

	"github.com/google/uuid"

	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

// Service defines wishlist business logic.
type Service interface {
	AddItem(ctx context.Context, req AddItemRequest) (*Item, error)
	CheckItem(ctx context.Context, productID, email string) (bool, error)
	ListItems(ctx context.Context, email string, page, limit int) (*ListResult, error)
	RemoveItem(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new wishlist service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddItem(ctx context.Context, req AddItemRequest) (*Item, error) {
	if req.Email == "" || req.ProductID == "" {
		return nil, apierror.New(apierror.ErrBadRequest, "email and product_id are required", nil)
	}

	exists, err := s.repo.Exists(ctx, req.ProductID, req.Email)
	if err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "check wishlist", err.Error())
	}
	if exists {
		return nil, apierror.New(apierror.ErrConflict, "product already in wishlist", nil)
	}

	item := &Item{
		ID:        uuid.New(),
		Email:     req.Email,
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		ImageURL:  req.ImageURL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "add wishlist item", err.Error())
	}
	return item, nil
}

func (s *service) CheckItem(ctx context.Context, productID, email string) (bool, error) {
	return s.repo.Exists(ctx, productID, email)
}

func (s *service) ListItems(ctx context.Context, email string, page, limit int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := s.repo.CountByEmail(ctx, email)
	if err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "count wishlist", err.Error())
	}
	items, err := s.repo.ListByEmail(ctx, email, page, limit)
	if err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "list wishlist", err.Error())
	}

	return &ListResult{TotalItems: total, Page: page, Limit: limit, Items: items}, nil
}

func (s *service) RemoveItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.New(apierror.ErrNotFound, "wishlist item not found", nil)
	}
	return nil
}
