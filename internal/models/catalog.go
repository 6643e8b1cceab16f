package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products in the catalog.
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Product is a catalog item.
type Product struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Slug          string    `db:"slug" json:"slug"`
	Description   string    `db:"description" json:"description"`
	Price         float64   `db:"price" json:"price"`
	Quantity      int       `db:"quantity" json:"quantity"`
	CountInStock  int       `db:"count_in_stock" json:"countInStock"`
	Sold          int       `db:"sold" json:"sold"`
	CategoryID    uuid.UUID `db:"category_id" json:"categoryId"`
	CategoryTitle string    `db:"category_title" json:"categoryTitle,omitempty"`
	Image         string    `db:"image" json:"image"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Search     string
	MinPrice   float64
	MaxPrice   float64
	CategoryID *uuid.UUID
	SortAsc    bool
}

// Pagination describes the page window of a list response.
type Pagination struct {
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	TotalItems  int64 `json:"totalItems"`
}
