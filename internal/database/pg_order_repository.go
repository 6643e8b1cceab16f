package database

import (
	"context"
	"errors"
	"fmt"

	"storefront-server/internal/interfaces"
	"storefront-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var _ interfaces.OrderRepository = (*pgOrderRepository)(nil)

// pgOrderRepository takes the pool rather than a bare querier: creating and
// updating an order touches two tables inside one transaction.
type pgOrderRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgOrderRepository creates a new PostgreSQL-backed OrderRepository.
func NewPgOrderRepository(pool *pgxpool.Pool, logger *zap.Logger) interfaces.OrderRepository {
	return &pgOrderRepository{
		pool:   pool,
		logger: logger.Named("PgOrderRepo"),
	}
}

func insertOrderItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, productIDs []uuid.UUID) error {
	query := `INSERT INTO order_items (order_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, productID := range productIDs {
		if _, err := tx.Exec(ctx, query, orderID, productID); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

// CreateOrder inserts the order row and its product references atomically.
func (r *pgOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction for order create", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query, order.UserID).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		r.logger.Error("Failed to create order in postgres", zap.Error(err), zap.String("userID", order.UserID.String()))
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err := insertOrderItems(ctx, tx, order.ID, order.ProductIDs); err != nil {
		r.logger.Error("Failed to insert order items", zap.Error(err), zap.String("orderID", order.ID.String()))
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit order create transaction", zap.Error(err))
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}
	r.logger.Info("Order created successfully", zap.String("orderID", order.ID.String()), zap.Int("items", len(order.ProductIDs)))
	return nil
}

func scanOrderRow(row pgx.Row, order *models.Order) error {
	var productIDs []uuid.UUID
	if err := row.Scan(&order.ID, &order.UserID, &order.CreatedAt, &order.UpdatedAt, &productIDs); err != nil {
		return err
	}
	order.ProductIDs = productIDs
	return nil
}

const orderSelect = `SELECT o.id, o.user_id, o.created_at, o.updated_at,
	COALESCE(array_agg(oi.product_id) FILTER (WHERE oi.product_id IS NOT NULL), '{}') AS product_ids
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id`

// GetOrderByID retrieves an order together with its product references.
func (r *pgOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := orderSelect + ` WHERE o.id = $1 GROUP BY o.id`
	order := &models.Order{}
	if err := scanOrderRow(r.pool.QueryRow(ctx, query, id), order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Order not found by ID", zap.String("id", id.String()))
			return nil, models.ErrOrderNotFound
		}
		r.logger.Error("Failed to get order by id", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get order by id: %w", err)
	}
	return order, nil
}

// ListOrders retrieves one page of orders, newest first.
func (r *pgOrderRepository) ListOrders(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		r.logger.Error("Failed to count orders", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	_, offset, _ := models.ClampPage(page, limit, count)

	query := orderSelect + ` GROUP BY o.id ORDER BY o.created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query orders from postgres", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0, limit)
	for rows.Next() {
		var order models.Order
		if err := scanOrderRow(rows, &order); err != nil {
			r.logger.Error("Failed to scan order row", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating order rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating order rows: %w", err)
	}
	return orders, count, nil
}

// UpdateOrder replaces the order's product references atomically.
func (r *pgOrderRepository) UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction for order update", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE orders SET updated_at = CURRENT_TIMESTAMP WHERE id = $1 RETURNING user_id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query, order.ID).Scan(&order.UserID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Attempted to update non-existent order", zap.String("orderID", order.ID.String()))
			return nil, models.ErrOrderNotFound
		}
		r.logger.Error("Failed to update order in postgres", zap.Error(err), zap.String("orderID", order.ID.String()))
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		r.logger.Error("Failed to clear order items", zap.Error(err), zap.String("orderID", order.ID.String()))
		return nil, fmt.Errorf("failed to clear order items: %w", err)
	}
	if err := insertOrderItems(ctx, tx, order.ID, order.ProductIDs); err != nil {
		r.logger.Error("Failed to insert order items", zap.Error(err), zap.String("orderID", order.ID.String()))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit order update transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}
	r.logger.Info("Order updated successfully", zap.String("orderID", order.ID.String()), zap.Int("items", len(order.ProductIDs)))
	return order, nil
}

// DeleteOrder removes an order; its items go with it via ON DELETE CASCADE.
func (r *pgOrderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete order from postgres", zap.Error(err), zap.String("orderID", id.String()))
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent order", zap.String("orderID", id.String()))
		return models.ErrOrderNotFound
	}
	r.logger.Info("Order deleted successfully", zap.String("orderID", id.String()))
	return nil
}
