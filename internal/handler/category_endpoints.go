package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listCategories(c *gin.Context) {
	page, limit := parsePagination(c)
	search := c.Query("search")
	sort := c.DefaultQuery("sort", "desc")

	categories, pagination, err := h.categoryService.ListCategories(c.Request.Context(), page, limit, search, sort)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryListResponse{Categories: categories, Pagination: *pagination})
}

func (h *Handler) getCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}
	if len(req.Title) < minTitleLength || len(req.Title) > maxTitleLength {
		badRequest(c, fmt.Sprintf("Title length must be between %d and %d characters", minTitleLength, maxTitleLength))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req.Title)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *Handler) updateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}
	if len(req.Title) < minTitleLength || len(req.Title) > maxTitleLength {
		badRequest(c, fmt.Sprintf("Title length must be between %d and %d characters", minTitleLength, maxTitleLength))
		return
	}

	category, err := h.categoryService.UpdateCategoryBySlug(c.Request.Context(), c.Param("slug"), req.Title)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategoryBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
