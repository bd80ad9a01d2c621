package handlers

import (
	"net/http"

	"canteen-api/middleware"
	"canteen-api/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddToCartRequest struct {
	MenuItemID  uint   `json:"menu_item_id" binding:"required"`
	PortionName string `json:"portion_name" binding:"required"`
	Quantity    int    `json:"quantity"`
}

type SetQuantityRequest struct {
	MenuItemID  uint   `json:"menu_item_id" binding:"required"`
	PortionName string `json:"portion_name" binding:"required"`
	Quantity    int    `json:"quantity"`
}

// GetCart returns the caller's current cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.carts.View(middleware.GetUserID(c)))
}

// AddToCart merges a selection into the caller's cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	view, err := h.carts.Add(c.Request.Context(), middleware.GetUserID(c), req.MenuItemID, req.PortionName, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "cart": view})
}

// SetQuantity overwrites a line's quantity; zero removes the line
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view := h.carts.SetQuantity(middleware.GetUserID(c), req.MenuItemID, req.PortionName, req.Quantity)
	c.JSON(http.StatusOK, gin.H{"cart": view})
}

// RemoveFromCart drops a line; removing an absent line is fine
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	var req struct {
		MenuItemID  uint   `json:"menu_item_id" binding:"required"`
		PortionName string `json:"portion_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view := h.carts.Remove(middleware.GetUserID(c), req.MenuItemID, req.PortionName)
	c.JSON(http.StatusOK, gin.H{"cart": view})
}

// ClearCart empties the caller's cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.carts.Clear(middleware.GetUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
