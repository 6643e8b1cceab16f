package service

import (
	"context"

	"storefront-server/internal/models"
)

// ProductInput is the pre-validated product payload for create/update.
type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Quantity    int
	CategoryID  string
	Image       string
}

// CategoryService manages the category part of the catalog.
type CategoryService interface {
	ListCategories(ctx context.Context, page, limit int, search, sort string) ([]models.Category, *models.Pagination, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, title string) (*models.Category, error)
	UpdateCategoryBySlug(ctx context.Context, slug, title string) (*models.Category, error)
	DeleteCategoryBySlug(ctx context.Context, slug string) error
}

// ProductService manages products, including the stock bookkeeping.
type ProductService interface {
	ListProducts(ctx context.Context, page, limit int, filter models.ProductFilter) ([]models.Product, *models.Pagination, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProductBySlug(ctx context.Context, slug string, input ProductInput) (*models.Product, error)
	DeleteProductBySlug(ctx context.Context, slug string) error
}
