package handler

import (
	"errors"
	"net/http"

	"storefront-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// login checks credentials and sets the session cookie. Both unknown email
// and wrong password keep their distinct message texts.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("failure").Inc()
		handleServiceError(c, err)
		return
	}

	tokenString, err := h.authService.IssueSession(user.ID)
	if err != nil {
		zap.L().Error("Failed to issue session token", zap.Error(err), zap.String("userID", user.ID.String()))
		handleServiceError(c, err)
		return
	}

	loginsTotal.WithLabelValues("success").Inc()
	h.setSessionCookie(c, tokenString, int(h.cfg.SessionTokenTTL.Seconds()))
	c.JSON(http.StatusOK, user)
}

// logout clears the session cookie. The token itself stays valid until
// expiry; there is no server-side session state to revoke.
func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// getMe returns the account behind the current session.
func (h *Handler) getMe(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	user, err := h.userRepo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			zap.L().Warn("User behind valid session no longer exists", zap.String("userID", userID.String()))
			handleServiceError(c, models.ErrUnauthorized)
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// setSessionCookie writes (or clears, with maxAge < 0) the access_token
// cookie. SameSite=None so a browser frontend on another origin can send it.
func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	secure := h.cfg.Env != "development"
	c.SetCookie(sessionCookieName, value, maxAge, "/", "", secure, true)
}
