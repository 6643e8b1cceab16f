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

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ interfaces.UserRepository = (*pgUserRepository)(nil)

const userColumns = `id, name, username, slug, email, password_hash, address, phone, image, is_admin, is_banned, created_at, updated_at`

type pgUserRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

// mapUserUniqueViolation translates a unique constraint violation into the
// matching domain error. Returns nil if err is not a unique violation.
func mapUserUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return models.ErrUsernameTaken
	case "users_email_key", "users_slug_key":
		return models.ErrUserAlreadyExists
	default:
		return models.ErrUserAlreadyExists
	}
}

// CreateUser inserts a new user into the database.
func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, username, slug, email, password_hash, address, phone, image, is_admin, is_banned)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("email", user.Email), zap.String("slug", user.Slug))
	err := r.db.QueryRow(ctx, query,
		user.Name, user.Username, user.Slug, user.Email, user.PasswordHash,
		user.Address, user.Phone, user.Image, user.IsAdmin, user.IsBanned,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if mapped := mapUserUniqueViolation(err); mapped != nil {
			r.logger.Warn("Attempted to create duplicate user", zap.String("email", user.Email), zap.String("username", user.Username))
			return mapped
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}
	r.logger.Info("User created successfully", zap.String("userID", user.ID.String()), zap.String("email", user.Email))
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user := &models.User{}
	err := pgxscan.Get(ctx, r.db, user, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by ID", zap.String("id", id.String()))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id from postgres", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email, case-insensitively.
func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	user := &models.User{}
	err := pgxscan.Get(ctx, r.db, user, query, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by email", zap.String("email", email))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email from postgres: %w", err)
	}
	return user, nil
}

// GetUserBySlug retrieves a user by their slug.
func (r *pgUserRepository) GetUserBySlug(ctx context.Context, slug string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE slug = $1`
	user := &models.User{}
	err := pgxscan.Get(ctx, r.db, user, query, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by slug", zap.String("slug", slug))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by slug from postgres", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get user by slug from postgres: %w", err)
	}
	return user, nil
}

// ExistsByEmail reports whether a user with the given email already exists.
func (r *pgUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		r.logger.Error("Failed to check user existence by email", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("failed to check user existence by email: %w", err)
	}
	return exists, nil
}

// ExistsByUsername reports whether a user with the given username already exists.
func (r *pgUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND username <> '')`
	var exists bool
	if err := r.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		r.logger.Error("Failed to check user existence by username", zap.Error(err), zap.String("username", username))
		return false, fmt.Errorf("failed to check user existence by username: %w", err)
	}
	return exists, nil
}

// ListUsers retrieves one page of users, newest first. An optional search
// term filters case-insensitively over name, username and email.
func (r *pgUserRepository) ListUsers(ctx context.Context, page, limit int, search string) ([]models.User, int64, error) {
	where := ""
	args := []interface{}{}
	if s := strings.TrimSpace(search); s != "" {
		where = ` WHERE name ILIKE $1 OR username ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+s+"%")
	}

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&count); err != nil {
		r.logger.Error("Failed to count users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	_, offset, _ := models.ClampPage(page, limit, count)

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	users := make([]models.User, 0, limit)
	if err := pgxscan.Select(ctx, r.db, &users, query, args...); err != nil {
		r.logger.Error("Failed to list users from postgres", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, count, nil
}

// UpdateUserBySlug applies the non-nil fields of upd to the user identified
// by slug. When the username changes, newSlug carries the re-derived slug.
func (r *pgUserRepository) UpdateUserBySlug(ctx context.Context, slug string, upd models.UserUpdate, newSlug string) (*models.User, error) {
	queryBase := "UPDATE users SET updated_at = CURRENT_TIMESTAMP"
	args := []interface{}{}
	argID := 1

	appendField := func(column string, value interface{}) {
		queryBase += fmt.Sprintf(", %s = $%d", column, argID)
		args = append(args, value)
		argID++
	}

	if upd.Name != nil {
		appendField("name", *upd.Name)
	}
	if upd.Username != nil {
		appendField("username", *upd.Username)
	}
	if newSlug != "" {
		appendField("slug", newSlug)
	}
	if upd.Address != nil {
		appendField("address", *upd.Address)
	}
	if upd.Phone != nil {
		appendField("phone", *upd.Phone)
	}
	if upd.Image != nil {
		appendField("image", *upd.Image)
	}

	query := queryBase + fmt.Sprintf(" WHERE slug = $%d RETURNING %s", argID, userColumns)
	args = append(args, slug)

	r.logger.Debug("Executing update user query", zap.String("query", query), zap.String("slug", slug))
	user := &models.User{}
	err := pgxscan.Get(ctx, r.db, user, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Attempted to update non-existent user", zap.String("slug", slug))
			return nil, models.ErrUserNotFound
		}
		if mapped := mapUserUniqueViolation(err); mapped != nil {
			r.logger.Warn("Attempted to update user into a duplicate", zap.String("slug", slug))
			return nil, mapped
		}
		r.logger.Error("Failed to update user fields in postgres", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to update user fields: %w", err)
	}
	r.logger.Info("User fields updated successfully", zap.String("slug", user.Slug))
	return user, nil
}

// UpdatePasswordHashByEmail обновляет хеш пароля пользователя.
func (r *pgUserRepository) UpdatePasswordHashByEmail(ctx context.Context, email, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE lower(email) = lower($2)`
	cmdTag, err := r.db.Exec(ctx, query, passwordHash, email)
	if err != nil {
		r.logger.Error("Failed to update user password hash in postgres", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update password hash for non-existent user", zap.String("email", email))
		return models.ErrUserNotFound
	}
	r.logger.Info("User password hash updated successfully", zap.String("email", email))
	return nil
}

// SetUserBanStatus updates the is_banned status for a user.
func (r *pgUserRepository) SetUserBanStatus(ctx context.Context, userID uuid.UUID, isBanned bool) error {
	query := `UPDATE users SET is_banned = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, query, isBanned, userID)
	if err != nil {
		r.logger.Error("Failed to update user ban status in postgres", zap.Error(err), zap.String("userID", userID.String()))
		return fmt.Errorf("failed to update user ban status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update ban status for non-existent user", zap.String("userID", userID.String()))
		return models.ErrUserNotFound
	}
	r.logger.Info("User ban status updated successfully", zap.String("userID", userID.String()), zap.Bool("isBanned", isBanned))
	return nil
}

// DeleteUserBySlug removes a user by their slug.
func (r *pgUserRepository) DeleteUserBySlug(ctx context.Context, slug string) error {
	query := `DELETE FROM users WHERE slug = $1`
	cmdTag, err := r.db.Exec(ctx, query, slug)
	if err != nil {
		r.logger.Error("Failed to delete user from postgres", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent user", zap.String("slug", slug))
		return models.ErrUserNotFound
	}
	r.logger.Info("User deleted successfully", zap.String("slug", slug))
	return nil
}
