package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/markethub/backend/internal/application/ordering"
	"github.com/markethub/backend/internal/interfaces/http/dto"
)

// CartHandler handles basket endpoints
type CartHandler struct {
	BaseHandler
	cartService *orderingapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *orderingapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Show handles GET /api/v1/cart
func (h *CartHandler) Show(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.ShowCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderingapp.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem handles DELETE /api/v1/cart/items/:id where id is the product id
func (h *CartHandler) RemoveItem(c *gin.Context) {
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
	productID, _ := uuid.Parse(req.ID)

	cart, err := h.cartService.RemoveFromCart(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Confirm handles POST /api/v1/cart/confirm
func (h *CartHandler) Confirm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderingapp.ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.cartService.ConfirmOrder(c.Request.Context(), userID, req.ContactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}
