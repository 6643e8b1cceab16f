package interfaces

import (
	"context"

	"storefront-server/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data persistence (PostgreSQL).
type UserRepository interface {
	// CreateUser inserts a new user. Duplicate email/username/slug surface
	// as models.ErrUserAlreadyExists / models.ErrUsernameTaken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by their ID.
	// Returns models.ErrUserNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetUserByEmail retrieves a user by their email address (case-insensitive).
	// Returns models.ErrUserNotFound if the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserBySlug retrieves a user by their slug.
	GetUserBySlug(ctx context.Context, slug string) (*models.User, error)

	// ExistsByEmail reports whether a user with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername reports whether a user with the username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ListUsers retrieves one page of users, newest first, optionally
	// filtered by a case-insensitive search over name/username/email.
	ListUsers(ctx context.Context, page, limit int, search string) ([]models.User, int64, error)

	// UpdateUserBySlug applies the non-nil fields of upd. A username change
	// re-derives the slug; the updated row is returned.
	UpdateUserBySlug(ctx context.Context, slug string, upd models.UserUpdate, newSlug string) (*models.User, error)

	// UpdatePasswordHashByEmail replaces the stored password hash.
	UpdatePasswordHashByEmail(ctx context.Context, email, passwordHash string) error

	// SetUserBanStatus sets the ban status of a user by ID.
	SetUserBanStatus(ctx context.Context, userID uuid.UUID, isBanned bool) error

	// DeleteUserBySlug removes a user. Returns models.ErrUserNotFound if absent.
	DeleteUserBySlug(ctx context.Context, slug string) error
}
