package service

import (
	"context"
	"fmt"

	"storefront-server/internal/interfaces"
	"storefront-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure orderServiceImpl implements OrderService
var _ OrderService = (*orderServiceImpl)(nil)

type orderServiceImpl struct {
	orderRepo   interfaces.OrderRepository
	productRepo interfaces.ProductRepository
	logger      *zap.Logger
}

// NewOrderService creates a new instance of orderServiceImpl.
func NewOrderService(orderRepo interfaces.OrderRepository, productRepo interfaces.ProductRepository, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.Named("OrderService"),
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (*models.Order, error) {
	log := s.logger.With(zap.String("userID", userID.String()))

	if len(productIDs) == 0 {
		return nil, models.ErrEmptyOrder
	}

	allExist, err := s.productRepo.ExistByIDs(ctx, productIDs)
	if err != nil {
		log.Error("Error checking order products", zap.Error(err))
		return nil, fmt.Errorf("error checking order products: %w", err)
	}
	if !allExist {
		return nil, models.ErrProductNotFound
	}

	order := &models.Order{UserID: userID, ProductIDs: productIDs}
	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		log.Error("Failed to create order", zap.Error(err))
		return nil, err
	}
	log.Info("Order created successfully", zap.String("orderID", order.ID.String()), zap.Int("products", len(productIDs)))
	return order, nil
}

func (s *orderServiceImpl) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetOrderByID(ctx, id)
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, page, limit int) ([]models.Order, *models.Pagination, error) {
	orders, count, err := s.orderRepo.ListOrders(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, nil, err
	}
	current, _, totalPages := models.ClampPage(page, limit, count)
	return orders, &models.Pagination{TotalPages: totalPages, CurrentPage: current, TotalItems: count}, nil
}

func (s *orderServiceImpl) UpdateOrder(ctx context.Context, id uuid.UUID, productIDs []uuid.UUID) (*models.Order, error) {
	log := s.logger.With(zap.String("orderID", id.String()))

	if len(productIDs) == 0 {
		return nil, models.ErrEmptyOrder
	}

	allExist, err := s.productRepo.ExistByIDs(ctx, productIDs)
	if err != nil {
		log.Error("Error checking order products", zap.Error(err))
		return nil, fmt.Errorf("error checking order products: %w", err)
	}
	if !allExist {
		return nil, models.ErrProductNotFound
	}

	existing, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.ProductIDs = productIDs

	updated, err := s.orderRepo.UpdateOrder(ctx, existing)
	if err != nil {
		return nil, err
	}
	log.Info("Order updated successfully")
	return updated, nil
}

func (s *orderServiceImpl) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Order deleted successfully", zap.String("orderID", id.String()))
	return nil
}
