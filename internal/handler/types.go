package handler

import "storefront-server/internal/models"

// --- Константы для валидации ---
const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 6
	maxPasswordLength = 100
	minTitleLength    = 3
	maxTitleLength    = 100

	defaultPageLimit = 10
	maxPageLimit     = 100
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Image    string `json:"image"`
}

type activateRequest struct {
	Token string `json:"token" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Image    *string `json:"image,omitempty"`
}

type categoryRequest struct {
	Title string `json:"title" binding:"required"`
}

type productRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	CategoryID  string  `json:"categoryId" binding:"required,uuid"`
	Image       string  `json:"image"`
}

type orderRequest struct {
	Products []string `json:"products" binding:"required,min=1,dive,uuid"`
}

type userListResponse struct {
	Users      []models.User     `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

type categoryListResponse struct {
	Categories []models.Category `json:"categories"`
	Pagination models.Pagination `json:"pagination"`
}

type productListResponse struct {
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
}

type orderListResponse struct {
	Orders     []models.Order    `json:"orders"`
	Pagination models.Pagination `json:"pagination"`
}
