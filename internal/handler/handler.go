package handler

import (
	"storefront-server/internal/config"
	"storefront-server/internal/interfaces"
	"storefront-server/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler bundles the HTTP endpoints of the store.
type Handler struct {
	authService     service.AuthService
	userService     service.UserService
	categoryService service.CategoryService
	productService  service.ProductService
	orderService    service.OrderService
	userRepo        interfaces.UserRepository
	cfg             *config.Config
}

func NewHandler(
	authService service.AuthService,
	userService service.UserService,
	categoryService service.CategoryService,
	productService service.ProductService,
	orderService service.OrderService,
	userRepo interfaces.UserRepository,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authService:     authService,
		userService:     userService,
		categoryService: categoryService,
		productService:  productService,
		orderService:    orderService,
		userRepo:        userRepo,
		cfg:             cfg,
	}
}

// RegisterRoutes wires every endpoint onto the router. rateLimiter guards the
// endpoints that mint tokens or check credentials; pass nil to disable.
func (h *Handler) RegisterRoutes(router *gin.Engine, rateLimiter gin.HandlerFunc) {
	limited := func() gin.HandlerFunc {
		if rateLimiter != nil {
			return rateLimiter
		}
		return func(c *gin.Context) { c.Next() }
	}

	usersGroup := router.Group("/users")
	{
		usersGroup.POST("/register", limited(), h.RequireGuest(), h.register)
		usersGroup.POST("/activate", h.activate)
		usersGroup.POST("/forgot-password", limited(), h.forgotPassword)
		usersGroup.POST("/reset-password", h.resetPassword)

		usersGroup.GET("", h.RequireAuth(), h.RequireAdmin(), h.listUsers)
		usersGroup.GET("/:slug", h.RequireAuth(), h.getUser)
		usersGroup.PUT("/:slug", h.RequireAuth(), h.updateUser)
		usersGroup.DELETE("/:slug", h.RequireAuth(), h.RequireAdmin(), h.deleteUser)
		usersGroup.PUT("/ban/:id", h.RequireAuth(), h.RequireAdmin(), h.banUser)
		usersGroup.PUT("/unban/:id", h.RequireAuth(), h.RequireAdmin(), h.unbanUser)
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", limited(), h.RequireGuest(), h.login)
		authGroup.POST("/logout", h.RequireAuth(), h.logout)
		authGroup.GET("/me", h.RequireAuth(), h.getMe)
	}

	categoriesGroup := router.Group("/categories")
	{
		categoriesGroup.GET("", h.listCategories)
		categoriesGroup.GET("/:slug", h.getCategory)
		categoriesGroup.POST("", h.RequireAuth(), h.RequireAdmin(), h.createCategory)
		categoriesGroup.PUT("/:slug", h.RequireAuth(), h.RequireAdmin(), h.updateCategory)
		categoriesGroup.DELETE("/:slug", h.RequireAuth(), h.RequireAdmin(), h.deleteCategory)
	}

	productsGroup := router.Group("/products")
	{
		productsGroup.GET("", h.listProducts)
		productsGroup.GET("/:slug", h.getProduct)
		productsGroup.POST("", h.RequireAuth(), h.RequireAdmin(), h.createProduct)
		productsGroup.PUT("/:slug", h.RequireAuth(), h.RequireAdmin(), h.updateProduct)
		productsGroup.DELETE("/:slug", h.RequireAuth(), h.RequireAdmin(), h.deleteProduct)
	}

	ordersGroup := router.Group("/orders")
	{
		ordersGroup.GET("", h.RequireAuth(), h.RequireAdmin(), h.listOrders)
		ordersGroup.GET("/:id", h.RequireAuth(), h.getOrder)
		ordersGroup.POST("", h.RequireAuth(), h.createOrder)
		ordersGroup.PUT("/:id", h.RequireAuth(), h.RequireAdmin(), h.updateOrder)
		ordersGroup.DELETE("/:id", h.RequireAuth(), h.RequireAdmin(), h.deleteOrder)
	}
}
