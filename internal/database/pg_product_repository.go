package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-server/internal/interfaces"
	"storefront-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ interfaces.ProductRepository = (*pgProductRepository)(nil)

// category_title is joined in so listings can show the category without a
// second round trip.
const productColumns = `p.id, p.title, p.slug, p.description, p.price, p.quantity, p.count_in_stock, p.sold,
	p.category_id, c.title AS category_title, p.image, p.created_at, p.updated_at`

type pgProductRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgProductRepository creates a new PostgreSQL-backed ProductRepository.
func NewPgProductRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.ProductRepository {
	return &pgProductRepository{
		db:     db,
		logger: logger.Named("PgProductRepo"),
	}
}

// CreateProduct inserts a new product.
func (r *pgProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `INSERT INTO products (title, slug, description, price, quantity, count_in_stock, sold, category_id, image)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		product.Title, product.Slug, product.Description, product.Price,
		product.Quantity, product.CountInStock, product.Sold, product.CategoryID, product.Image,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to create duplicate product", zap.String("title", product.Title))
			return models.ErrProductAlreadyExists
		}
		r.logger.Error("Failed to create product in postgres", zap.Error(err), zap.String("title", product.Title))
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.logger.Info("Product created successfully", zap.String("productID", product.ID.String()), zap.String("title", product.Title))
	return nil
}

// GetProductBySlug retrieves a product by its slug, category title included.
func (r *pgProductRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p JOIN categories c ON c.id = p.category_id WHERE p.slug = $1`
	product := &models.Product{}
	if err := pgxscan.Get(ctx, r.db, product, query, slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Product not found by slug", zap.String("slug", slug))
			return nil, models.ErrProductNotFound
		}
		r.logger.Error("Failed to get product by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}
	return product, nil
}

// ExistsByTitle reports whether a product with the given title exists.
func (r *pgProductRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE lower(title) = lower($1))`
	var exists bool
	if err := r.db.QueryRow(ctx, query, title).Scan(&exists); err != nil {
		r.logger.Error("Failed to check product existence by title", zap.Error(err), zap.String("title", title))
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// ExistByIDs reports whether every given ID references an existing product.
func (r *pgProductRepository) ExistByIDs(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}
	query := `SELECT COUNT(DISTINCT id) FROM products WHERE id = ANY($1)`
	var count int64
	if err := r.db.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		r.logger.Error("Failed to check products existence by ids", zap.Error(err))
		return false, fmt.Errorf("failed to check products existence: %w", err)
	}

	distinct := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	return count == int64(len(distinct)), nil
}

// ListProducts retrieves one page of products matching the filter.
func (r *pgProductRepository) ListProducts(ctx context.Context, page, limit int, filter models.ProductFilter) ([]models.Product, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argID := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argID))
		args = append(args, value)
		argID++
	}

	if s := strings.TrimSpace(filter.Search); s != "" {
		addCondition("(p.title ILIKE $%d OR p.description ILIKE $%[1]d)", "%"+s+"%")
	}
	if filter.MinPrice > 0 {
		addCondition("p.price >= $%d", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		addCondition("p.price <= $%d", filter.MaxPrice)
	}
	if filter.CategoryID != nil {
		addCondition("p.category_id = $%d", *filter.CategoryID)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int64
	countQuery := `SELECT COUNT(*) FROM products p` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		r.logger.Error("Failed to count products", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	_, offset, _ := models.ClampPage(page, limit, count)

	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM products p JOIN categories c ON c.id = p.category_id%s ORDER BY p.price %s, p.created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, direction, argID, argID+1)
	args = append(args, limit, offset)

	products := make([]models.Product, 0, limit)
	if err := pgxscan.Select(ctx, r.db, &products, query, args...); err != nil {
		r.logger.Error("Failed to list products from postgres", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, count, nil
}

// UpdateProductBySlug overwrites the mutable fields of a product.
func (r *pgProductRepository) UpdateProductBySlug(ctx context.Context, slug string, product *models.Product) (*models.Product, error) {
	query := `UPDATE products p SET
	        title = $1, slug = $2, description = $3, price = $4,
	        quantity = $5, count_in_stock = $6, sold = $7,
	        category_id = $8, image = $9, updated_at = CURRENT_TIMESTAMP
	    WHERE p.slug = $10
	    RETURNING p.id, p.title, p.slug, p.description, p.price, p.quantity, p.count_in_stock, p.sold,
	        p.category_id, (SELECT c.title FROM categories c WHERE c.id = p.category_id) AS category_title,
	        p.image, p.created_at, p.updated_at`
	updated := &models.Product{}
	err := pgxscan.Get(ctx, r.db, updated, query,
		product.Title, product.Slug, product.Description, product.Price,
		product.Quantity, product.CountInStock, product.Sold,
		product.CategoryID, product.Image, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Attempted to update non-existent product", zap.String("slug", slug))
			return nil, models.ErrProductNotFound
		}
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to rename product into a duplicate", zap.String("slug", slug), zap.String("title", product.Title))
			return nil, models.ErrProductAlreadyExists
		}
		r.logger.Error("Failed to update product in postgres", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	r.logger.Info("Product updated successfully", zap.String("slug", updated.Slug))
	return updated, nil
}

// DeleteProductBySlug removes a product by its slug.
func (r *pgProductRepository) DeleteProductBySlug(ctx context.Context, slug string) error {
	query := `DELETE FROM products WHERE slug = $1`
	cmdTag, err := r.db.Exec(ctx, query, slug)
	if err != nil {
		r.logger.Error("Failed to delete product from postgres", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent product", zap.String("slug", slug))
		return models.ErrProductNotFound
	}
	r.logger.Info("Product deleted successfully", zap.String("slug", slug))
	return nil
}
