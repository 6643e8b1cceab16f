package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-server/internal/config"
	"storefront-server/internal/interfaces"
	"storefront-server/internal/models"
	"storefront-server/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo interfaces.UserRepository
	cfg      *config.Config
	logger   *zap.Logger
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(userRepo interfaces.UserRepository, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger.Named("AuthService"),
	}
}

// Login authenticates a user by email and password.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	log := s.logger.With(zap.String("email", email))
	log.Info("Login attempt")

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("Login failed: user not found")
			return nil, models.ErrUserNotFound
		}
		log.Error("Login failed: error getting user from repository", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		log.Warn("Login failed: invalid password", zap.String("userID", user.ID.String()))
		return nil, models.ErrPasswordMismatch
	}

	if user.IsBanned {
		log.Warn("Login failed: user is banned", zap.String("userID", user.ID.String()))
		return nil, models.ErrUserBanned
	}

	log.Info("User logged in successfully", zap.String("userID", user.ID.String()))
	return user, nil
}

// IssueSession mints the cookie-borne session token.
func (s *authServiceImpl) IssueSession(userID uuid.UUID) (string, error) {
	sessionToken, err := token.Issue(
		map[string]interface{}{"user_id": userID.String()},
		s.cfg.SessionSecret,
		s.cfg.SessionTokenTTL,
	)
	if err != nil {
		s.logger.Error("Failed to issue session token", zap.Error(err), zap.String("userID", userID.String()))
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return sessionToken, nil
}

// VerifySession validates the session token and extracts the account ID.
func (s *authServiceImpl) VerifySession(tokenString string) (uuid.UUID, error) {
	payload, err := token.Verify(tokenString, s.cfg.SessionSecret)
	if err != nil {
		return uuid.Nil, err
	}

	idStr, _ := payload["user_id"].(string)
	userID, parseErr := uuid.Parse(idStr)
	if parseErr != nil {
		s.logger.Warn("Session token carries malformed user ID")
		return uuid.Nil, models.ErrTokenInvalid
	}
	return userID, nil
}
