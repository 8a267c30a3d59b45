package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Collection names the product listings the storefront serves.
type Collection string

const (
	CollectionShoes       Collection = "shoes"
	CollectionBags        Collection = "bags"
	CollectionAccessories Collection = "accessories"
)

// Collections is the fixed set of product collections, in route order.
var Collections = []Collection{CollectionShoes, CollectionBags, CollectionAccessories}

// Product is a storefront item in one of the collections.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Collection  Collection `json:"collection"`
	Name        string     `json:"name"`
	Type        string     `json:"type,omitempty"`
	Price       float64    `json:"price"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BlogPost is an editorial entry shown on the storefront blog page.
type BlogPost struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Content   string    `json:"content,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListQuery carries the filter/sort/pagination parameters of a listing request.
type ListQuery struct {
	Type      string
	MinPrice  *float64
	MaxPrice  *float64
	SortOrder string // asc | desc, price sort
	Page      int
	Limit     int
}

// ListResult mirrors the response shape the storefront client expects.
type ListResult struct {
	TotalDocuments int        `json:"totalDocuments"`
	Result         []*Product `json:"result"`
}
