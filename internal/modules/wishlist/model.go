package wishlist

import (
	"time"

	"github.com/google/uuid"
)

// Item is a product a shopper saved for later.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AddItemRequest is the payload for saving a product.
type AddItemRequest struct {
	Email     string  `json:"email"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// ListResult mirrors the paginated wishlist response the storefront expects.
type ListResult struct {
	TotalItems int     `json:"totalItems"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Items      []*Item `json:"items"`
}
