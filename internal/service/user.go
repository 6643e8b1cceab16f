package service

import (
	"context"

	"storefront-server/internal/models"

	"github.com/google/uuid"
)

// RegisterInput is the pre-validated registration profile. The HTTP layer
// owns request validation; the service only ever sees a fully-typed value.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Address  string
	Phone    string
	Image    string
}

// UserService orchestrates the register -> email -> activate lifecycle and
// the admin-facing user operations.
type UserService interface {
	// Register validates uniqueness, hashes the password and mails an
	// activation link. No account row is written; the returned token is
	// the only record of the pending registration.
	Register(ctx context.Context, input RegisterInput) (string, error)

	// Activate consumes an activation token and persists the account.
	// Replaying a consumed token fails with models.ErrUserAlreadyExists.
	Activate(ctx context.Context, tokenString string) (*models.User, error)

	// ForgotPassword mails a reset link for an existing account.
	ForgotPassword(ctx context.Context, email string) (string, error)

	// ResetPassword consumes a reset token and replaces the password hash.
	ResetPassword(ctx context.Context, tokenString, newPassword string) error

	ListUsers(ctx context.Context, page, limit int, search string) ([]models.User, *models.Pagination, error)
	GetUserBySlug(ctx context.Context, slug string) (*models.User, error)
	UpdateUserBySlug(ctx context.Context, slug string, upd models.UserUpdate) (*models.User, error)
	DeleteUserBySlug(ctx context.Context, slug string) error
	BanUser(ctx context.Context, userID uuid.UUID) error
	UnbanUser(ctx context.Context, userID uuid.UUID) error
}
