package handlers

import (
	"net/http"
	"strconv"
	"time"

	"canteen-api/middleware"
	"canteen-api/models"
	"canteen-api/services"
	"canteen-api/statemachine"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type PlaceOrderRequest struct {
	Instructions string `json:"instructions"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// listFilter reads the shared query params: code and status substrings,
// RFC3339 date bounds, and sort direction.
func listFilter(c *gin.Context) services.ListFilter {
	f := services.ListFilter{
		CodeContains:   c.Query("code"),
		StatusContains: c.Query("status"),
		Ascending:      c.Query("sort") == "asc",
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			f.PlacedAfter = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			f.PlacedBefore = &t
		}
	}
	return f
}

// PlaceOrder turns the caller's cart into a Pending order
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	order, err := h.orders.Place(c.Request.Context(), middleware.CurrentUser(c), req.Instructions)
	if err != nil {
		fail(c, err)
		return
	}

	cancellable, secondsLeft := h.orders.Cancellable(order)
	c.JSON(http.StatusCreated, gin.H{
		"message":             "Order placed successfully",
		"order":               order,
		"cancellable":         cancellable,
		"cancel_seconds_left": secondsLeft,
	})
}

// GetMyOrders returns the caller's orders, filtered and sorted
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	orders, err := h.orders.ListFor(c.Request.Context(), middleware.CurrentUser(c), listFilter(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns one order with history and the live cancel countdown
func (h *OrderHandler) GetOrderDetail(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("code"), middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	cancellable, secondsLeft := h.orders.Cancellable(order)
	c.JSON(http.StatusOK, gin.H{
		"order":               order,
		"cancellable":         cancellable,
		"cancel_seconds_left": secondsLeft,
	})
}

// CancelOrder performs a customer self-cancel within the grace window
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.orders.Cancel(c.Request.Context(), c.Param("code"), middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}

// GetAllOrders returns every order with a per-status summary (staff)
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orders.ListFor(c.Request.Context(), middleware.CurrentUser(c), listFilter(c))
	if err != nil {
		fail(c, err)
		return
	}

	summary := map[string]int{}
	var settledRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusSettled {
			settledRevenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary":   summary,
		"settled_revenue": settledRevenue,
		"count":           len(orders),
		"orders":          orders,
	})
}

// UpdateOrderStatus handles staff state transitions
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("code"), req.Status, middleware.CurrentUser(c), req.Note)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_code":     order.Code,
		"current_status": order.Status,
	})
}

// SettleOrder closes a delivered order's bill (staff)
func (h *OrderHandler) SettleOrder(c *gin.Context) {
	order, err := h.orders.Settle(c.Request.Context(), c.Param("code"), middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill settled", "order": order})
}

// SettleAccountBills settles every delivered order for one account (staff)
func (h *OrderHandler) SettleAccountBills(c *gin.Context) {
	accountID, err := strconv.ParseUint(c.Param("accountId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
		return
	}
	count, err := h.orders.SettleAllForAccount(c.Request.Context(), uint(accountID), middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account bills settled", "settled_count": count})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func (h *OrderHandler) GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":         info,
		"terminal_states":       []models.OrderStatus{models.StatusCancelled, models.StatusSettled},
		"cancel_window_seconds": int(statemachine.CancelWindow.Seconds()),
		"description":           "Canteen Order Lifecycle State Machine",
	})
}
