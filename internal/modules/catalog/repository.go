package catalog

import "context"

// Repository defines read-only data access for the catalog.
type Repository interface {
	ListProducts(ctx context.Context, collection Collection, q ListQuery) (*ListResult, error)
	GetProduct(ctx context.Context, collection Collection, id string) (*Product, error)
	ListBlogPosts(ctx context.Context) ([]*BlogPost, error)
}
