package interfaces

import (
	"context"

	"storefront-server/internal/models"

	"github.com/google/uuid"
)

// CategoryRepository defines the persistence boundary for categories.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	ListCategories(ctx context.Context, page, limit int, search string, sortAsc bool) ([]models.Category, int64, error)
	UpdateCategoryBySlug(ctx context.Context, slug, title, newSlug string) (*models.Category, error)
	DeleteCategoryBySlug(ctx context.Context, slug string) error
}

// ProductRepository defines the persistence boundary for products.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	ExistByIDs(ctx context.Context, ids []uuid.UUID) (bool, error)
	ListProducts(ctx context.Context, page, limit int, filter models.ProductFilter) ([]models.Product, int64, error)
	UpdateProductBySlug(ctx context.Context, slug string, product *models.Product) (*models.Product, error)
	DeleteProductBySlug(ctx context.Context, slug string) error
}

// OrderRepository defines the persistence boundary for orders.
type OrderRepository interface {
	// CreateOrder inserts the order row and its product references atomically.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	// UpdateOrder replaces the order's product references.
	UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
