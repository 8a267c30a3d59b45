package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

// Service defines cart business logic.
type Service interface {
	AddItem(ctx context.Context, req AddItemRequest) (*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	CheckItem(ctx context.Context, productID, email string) (bool, error)
	ListItems(ctx context.Context, email string, page, limit int) (*ListResult, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (*Item, error)
	RemoveItem(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new cart service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddItem(ctx context.Context, req AddItemRequest) (*Item, error) {
	if req.Email == "" || req.ProductID == "" {
		return nil, apierror.New(apierror.ErrBadRequest, "email and product_id are required", nil)
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if req.Price < 0 {
		return nil, apierror.New(apierror.ErrBadRequest, "price must not be negative", nil)
	}

	exists, err := s.repo.Exists(ctx, req.ProductID, req.Email)
	if err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "check cart", err.Error())
	}
	if exists {
		return nil, apierror.New(apierror.ErrConflict, "product already in cart", nil)
	}

	item := &Item{
		ID:        uuid.New(),
		Email:     req.Email,
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		ImageURL:  req.ImageURL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "add cart item", err.Error())
	}
	return item, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.ErrNotFound, "cart item not found", nil)
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
		return nil, apierror.New(apierror.ErrInternalServer, "count cart", err.Error())
	}
	totalPrice, err := s.repo.TotalPriceByEmail(ctx, email)
	if err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "total cart price", err.Error())
	}
	items, err := s.repo.ListByEmail(ctx, email, page, limit)
	if err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "list cart", err.Error())
	}

	return &ListResult{
		TotalItems: total,
		Page:       page,
		Limit:      limit,
		TotalPrice: totalPrice,
		Items:      items,
	}, nil
}

func (s *service) UpdateQuantity(ctx context.Context, id string, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, apierror.New(apierror.ErrBadRequest, "quantity must be at least 1", nil)
	}
	if err := s.repo.UpdateQuantity(ctx, id, quantity); err != nil {
		return nil, apierror.New(apierror.ErrNotFound, "cart item not found", nil)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) RemoveItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.New(apierror.ErrNotFound, "cart item not found", nil)
	}
	return nil
}
