package cart

import (
	"time"

	"github.com/google/uuid"
)

// Item is a product snapshot a shopper dropped into their cart. Price and
// name are captured at add time so later catalog edits cannot reprice a cart.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddItemRequest is the payload for placing a product in the cart.
type AddItemRequest struct {
	Email     string  `json:"email"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// ListResult mirrors the paginated cart response the storefront expects.
type ListResult struct {
	TotalItems int     `json:"totalItems"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPrice float64 `json:"totalPrice"`
	Items      []*Item `json:"items"`
}
