package handler

import (
	"errors"
	"net/http"

	"storefront-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "access_token"

const contextUserIDKey = "user_id"

// RequireAuth verifies the session cookie and stores the account ID in the
// request context. The token carries the ID only; everything else is looked
// up fresh by the guards and handlers that need it.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(sessionCookieName)
		if err != nil || tokenString == "" {
			zap.L().Debug("Session cookie missing")
			sessionVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrUnauthorized)
			return
		}

		userID, err := h.authService.VerifySession(tokenString)
		if err != nil {
			zap.L().Warn("Session token verification failed", zap.Error(err))
			sessionVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}

		sessionVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

// RequireAdmin re-reads the account on every request: admin and ban status
// come from the store, never from the token. Must run after RequireAuth.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := getUserIDFromContext(c)
		if err != nil {
			return
		}

		user, err := h.userRepo.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				// Валидная кука, но аккаунт уже удалён.
				handleServiceError(c, models.ErrUnauthorized)
				return
			}
			handleServiceError(c, err)
			return
		}

		if user.IsBanned {
			zap.L().Warn("Banned user attempted privileged request", zap.String("userID", userID.String()))
			handleServiceError(c, models.ErrUserBanned)
			return
		}
		if !user.IsAdmin {
			zap.L().Warn("Non-admin attempted privileged request", zap.String("userID", userID.String()))
			handleServiceError(c, models.ErrForbidden)
			return
		}

		c.Next()
	}
}

// RequireGuest rejects requests that already carry a valid session. A missing,
// expired or otherwise invalid cookie does not block.
func (h *Handler) RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(sessionCookieName)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}
		if _, err := h.authService.VerifySession(tokenString); err != nil {
			c.Next()
			return
		}
		handleServiceError(c, models.ErrAlreadyLoggedIn)
	}
}

// getUserIDFromContext reads the account ID stored by RequireAuth. On failure
// it writes the error response itself and returns a non-nil error.
func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(contextUserIDKey)
	if !exists {
		zap.L().Error("User ID missing in context, RequireAuth not applied?")
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    models.ErrCodeInternal,
			Message: "An unexpected internal error occurred",
		})
		return uuid.Nil, errors.New("user id missing in context")
	}
	userID, ok := raw.(uuid.UUID)
	if !ok {
		zap.L().Error("User ID in context has unexpected type", zap.Any("raw", raw))
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    models.ErrCodeInternal,
			Message: "An unexpected internal error occurred",
		})
		return uuid.Nil, errors.New("invalid user id in context")
	}
	return userID, nil
}
