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
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var _ interfaces.CategoryRepository = (*pgCategoryRepository)(nil)

const categoryColumns = `id, title, slug, created_at, updated_at`

type pgCategoryRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgCategoryRepository creates a new PostgreSQL-backed CategoryRepository.
func NewPgCategoryRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.CategoryRepository {
	return &pgCategoryRepository{
		db:     db,
		logger: logger.Named("PgCategoryRepo"),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateCategory inserts a new category.
func (r *pgCategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (title, slug) VALUES ($1, $2) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, category.Title, category.Slug).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to create duplicate category", zap.String("title", category.Title))
			return models.ErrCategoryAlreadyExists
		}
		r.logger.Error("Failed to create category in postgres", zap.Error(err), zap.String("title", category.Title))
		return fmt.Errorf("failed to create category: %w", err)
	}
	r.logger.Info("Category created successfully", zap.String("categoryID", category.ID.String()), zap.String("title", category.Title))
	return nil
}

// GetCategoryBySlug retrieves a category by its slug.
func (r *pgCategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	category := &models.Category{}
	if err := pgxscan.Get(ctx, r.db, category, query, slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Category not found by slug", zap.String("slug", slug))
			return nil, models.ErrCategoryNotFound
		}
		r.logger.Error("Failed to get category by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	return category, nil
}

// GetCategoryByID retrieves a category by its ID.
func (r *pgCategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category := &models.Category{}
	if err := pgxscan.Get(ctx, r.db, category, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Category not found by ID", zap.String("id", id.String()))
			return nil, models.ErrCategoryNotFound
		}
		r.logger.Error("Failed to get category by id", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return category, nil
}

// ExistsByTitle reports whether a category with the given title exists.
func (r *pgCategoryRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE lower(title) = lower($1))`
	var exists bool
	if err := r.db.QueryRow(ctx, query, title).Scan(&exists); err != nil {
		r.logger.Error("Failed to check category existence by title", zap.Error(err), zap.String("title", title))
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

// ListCategories retrieves one page of categories ordered by title.
func (r *pgCategoryRepository) ListCategories(ctx context.Context, page, limit int, search string, sortAsc bool) ([]models.Category, int64, error) {
	where := ""
	args := []interface{}{}
	if s := strings.TrimSpace(search); s != "" {
		where = ` WHERE title ILIKE $1`
		args = append(args, "%"+s+"%")
	}

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`+where, args...).Scan(&count); err != nil {
		r.logger.Error("Failed to count categories", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	_, offset, _ := models.ClampPage(page, limit, count)

	direction := "DESC"
	if sortAsc {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM categories%s ORDER BY title %s LIMIT $%d OFFSET $%d`,
		categoryColumns, where, direction, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	categories := make([]models.Category, 0, limit)
	if err := pgxscan.Select(ctx, r.db, &categories, query, args...); err != nil {
		r.logger.Error("Failed to list categories from postgres", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, count, nil
}

// UpdateCategoryBySlug renames a category, re-deriving its slug.
func (r *pgCategoryRepository) UpdateCategoryBySlug(ctx context.Context, slug, title, newSlug string) (*models.Category, error) {
	query := `UPDATE categories SET title = $1, slug = $2, updated_at = CURRENT_TIMESTAMP WHERE slug = $3 RETURNING ` + categoryColumns
	category := &models.Category{}
	if err := pgxscan.Get(ctx, r.db, category, query, title, newSlug, slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Attempted to update non-existent category", zap.String("slug", slug))
			return nil, models.ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to rename category into a duplicate", zap.String("slug", slug), zap.String("title", title))
			return nil, models.ErrCategoryAlreadyExists
		}
		r.logger.Error("Failed to update category in postgres", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	r.logger.Info("Category updated successfully", zap.String("slug", category.Slug))
	return category, nil
}

// DeleteCategoryBySlug removes a category by its slug.
func (r *pgCategoryRepository) DeleteCategoryBySlug(ctx context.Context, slug string) error {
	query := `DELETE FROM categories WHERE slug = $1`
	cmdTag, err := r.db.Exec(ctx, query, slug)
	if err != nil {
		r.logger.Error("Failed to delete category from postgres", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent category", zap.String("slug", slug))
		return models.ErrCategoryNotFound
	}
	r.logger.Info("Category deleted successfully", zap.String("slug", slug))
	return nil
}
