package wishlist

import "context"

// Repository defines data access for wishlist items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Exists(ctx context.Context, productID, email string) (bool, error)
	ListByEmail(ctx context.Context, email string, page, limit int) ([]*Item, error)
	CountByEmail(ctx context.Context, email string) (int, error)
	Delete(ctx context.Context, id string) error
}
