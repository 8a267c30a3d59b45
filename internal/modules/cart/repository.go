package cart

import "context"

// Repository defines data access for cart items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	Exists(ctx context.Context, productID, email string) (bool, error)
	ListByEmail(ctx context.Context, email string, page, limit int) ([]*Item, error)
	CountByEmail(ctx context.Context, email string) (int, error)
	TotalPriceByEmail(ctx context.Context, email string) (float64, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error

	// DeleteByIDs removes the given cart items by identifier set membership.
	// Missing rows are ignored, so replays of a payment callback are no-ops.
	DeleteByIDs(ctx context.Context, ids []string) error
}
