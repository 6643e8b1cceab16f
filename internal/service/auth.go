package service

import (
	"context"

	"storefront-server/internal/models"

	"github.com/google/uuid"
)

// AuthService handles credential checks and the stateless session tokens
// carried in the access_token cookie.
type AuthService interface {
	// Login verifies email+password. Unknown email and wrong password both
	// surface as not-found class errors; a banned account is forbidden.
	Login(ctx context.Context, email, password string) (*models.User, error)

	// IssueSession mints a session token carrying only the account ID.
	// Role and ban status are never encoded in the token.
	IssueSession(userID uuid.UUID) (string, error)

	// VerifySession checks signature and expiry and returns the account ID.
	// No server-side session state is consulted.
	VerifySession(tokenString string) (uuid.UUID, error)
}
