package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"storefront-server/internal/models"
	"storefront-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) listProducts(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := models.ProductFilter{
		Search:  c.Query("search"),
		SortAsc: c.DefaultQuery("sort", "desc") == "asc",
	}
	if v := c.Query("minPrice"); v != "" {
		minPrice, err := strconv.ParseFloat(v, 64)
		if err != nil || minPrice < 0 {
			badRequest(c, "Invalid minPrice")
			return
		}
		filter.MinPrice = minPrice
	}
	if v := c.Query("maxPrice"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil || maxPrice < 0 {
			badRequest(c, "Invalid maxPrice")
			return
		}
		filter.MaxPrice = maxPrice
	}
	if v := c.Query("category"); v != "" {
		categoryID, err := uuid.Parse(v)
		if err != nil {
			badRequest(c, "Invalid category id")
			return
		}
		filter.CategoryID = &categoryID
	}

	products, pagination, err := h.productService.ListProducts(c.Request.Context(), page, limit, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, productListResponse{Products: products, Pagination: *pagination})
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.productService.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	req, ok := bindProductRequest(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	req, ok := bindProductRequest(c)
	if !ok {
		return
	}

	product, err := h.productService.UpdateProductBySlug(c.Request.Context(), c.Param("slug"), service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProductBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func bindProductRequest(c *gin.Context) (productRequest, bool) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return req, false
	}
	if len(req.Title) < minTitleLength || len(req.Title) > maxTitleLength {
		badRequest(c, fmt.Sprintf("Title length must be between %d and %d characters", minTitleLength, maxTitleLength))
		return req, false
	}
	return req, true
}
