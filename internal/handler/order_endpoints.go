package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) listOrders(c *gin.Context) {
	page, limit := parsePagination(c)

	orders, pagination, err := h.orderService.ListOrders(c.Request.Context(), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderListResponse{Orders: orders, Pagination: *pagination})
}

func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) createOrder(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	productIDs, ok := bindOrderProducts(c)
	if !ok {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), userID, productIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	ordersPlacedTotal.Inc()
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) updateOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid order id")
		return
	}

	productIDs, ok := bindOrderProducts(c)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), orderID, productIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid order id")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func bindOrderProducts(c *gin.Context) ([]uuid.UUID, bool) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return nil, false
	}

	productIDs := make([]uuid.UUID, 0, len(req.Products))
	for _, raw := range req.Products {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "Invalid product id: "+raw)
			return nil, false
		}
		productIDs = append(productIDs, id)
	}
	return productIDs, true
}
