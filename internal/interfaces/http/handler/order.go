package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/markethub/backend/internal/application/ordering"
	"github.com/markethub/backend/internal/interfaces/http/dto"
)

// OrderHandler handles placed-order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}
	orderID, _ := uuid.Parse(req.ID)

	order, err := h.orderService.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
