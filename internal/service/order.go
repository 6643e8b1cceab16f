package service

import (
	"context"

	"storefront-server/internal/models"

	"github.com/google/uuid"
)

// OrderService manages order placement and admin order operations.
type OrderService interface {
	// CreateOrder places an order for the given user. At least one product
	// is required and every referenced product must exist.
	CreateOrder(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, page, limit int) ([]models.Order, *models.Pagination, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, productIDs []uuid.UUID) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
