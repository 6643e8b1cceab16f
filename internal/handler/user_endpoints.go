package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"storefront-server/internal/models"
	"storefront-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// register validates the payload and kicks off the activation flow. No
// account row exists until the emailed token is consumed.
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		badRequest(c, fmt.Sprintf("Password length must be between %d and %d characters", minPasswordLength, maxPasswordLength))
		return
	}
	if req.Username != "" && (len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength) {
		badRequest(c, fmt.Sprintf("Username length must be between %d and %d characters", minUsernameLength, maxUsernameLength))
		return
	}

	_, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Phone:    req.Phone,
		Image:    req.Image,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration accepted. Please check your email to activate your account.",
	})
}

// activate consumes an activation token and persists the account.
func (h *Handler) activate(c *gin.Context) {
	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	user, err := h.userService.Activate(c.Request.Context(), req.Token)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	activationsTotal.Inc()
	c.JSON(http.StatusCreated, user)
}

// forgotPassword mails a reset link for an existing account.
func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	if _, err := h.userService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent. Please check your email."})
}

// resetPassword consumes a reset token and replaces the password.
func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		badRequest(c, fmt.Sprintf("Password length must be between %d and %d characters", minPasswordLength, maxPasswordLength))
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset. You can now log in."})
}

func (h *Handler) listUsers(c *gin.Context) {
	page, limit := parsePagination(c)
	search := c.Query("search")

	users, pagination, err := h.userService.ListUsers(c.Request.Context(), page, limit, search)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userListResponse{Users: users, Pagination: *pagination})
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}
	if req.Username != nil && *req.Username != "" && (len(*req.Username) < minUsernameLength || len(*req.Username) > maxUsernameLength) {
		badRequest(c, fmt.Sprintf("Username length must be between %d and %d characters", minUsernameLength, maxUsernameLength))
		return
	}

	user, err := h.userService.UpdateUserBySlug(c.Request.Context(), c.Param("slug"), models.UserUpdate{
		Name:     req.Name,
		Username: req.Username,
		Address:  req.Address,
		Phone:    req.Phone,
		Image:    req.Image,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	slug := c.Param("slug")
	if err := h.userService.DeleteUserBySlug(c.Request.Context(), slug); err != nil {
		handleServiceError(c, err)
		return
	}
	zap.L().Info("User deleted by admin", zap.String("slug", slug))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *Handler) banUser(c *gin.Context) {
	h.setBanStatus(c, true)
}

func (h *Handler) unbanUser(c *gin.Context) {
	h.setBanStatus(c, false)
}

func (h *Handler) setBanStatus(c *gin.Context, banned bool) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid user id")
		return
	}

	if banned {
		err = h.userService.BanUser(c.Request.Context(), userID)
	} else {
		err = h.userService.UnbanUser(c.Request.Context(), userID)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	message := "User unbanned successfully"
	if banned {
		message = "User banned successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
