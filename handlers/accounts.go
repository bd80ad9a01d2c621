package handlers

import (
	"net/http"
	"strconv"

	"canteen-api/middleware"
	"canteen-api/services"

	"github.com/gin-gonic/gin"
)

// AccountHandler exposes the superadmin account-management surface.
type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type ResolveResetRequest struct {
	Password string `json:"password" binding:"required"`
}

func parseAccountID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
		return 0, false
	}
	return uint(id), true
}

// ListAccounts returns all accounts
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	users, err := h.accounts.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AddAccount creates an account with an explicit role
func (h *AccountHandler) AddAccount(c *gin.Context) {
	var req services.AccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.accounts.Add(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account created", "user": user})
}

// UpdateAccount edits an account's details
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}
	var req services.AccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.accounts.Update(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account updated", "user": user})
}

// DeleteAccount removes an account; deleting yourself is rejected
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}
	if err := h.accounts.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// ChangePassword sets a new secret for one account
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.accounts.ChangeSecret(c.Request.Context(), middleware.CurrentUser(c), id, req.Password); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// ResetAllPasswords sets every account's secret to the same value
func (h *AccountHandler) ResetAllPasswords(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := h.accounts.ResetAllSecrets(c.Request.Context(), middleware.CurrentUser(c), req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All passwords reset", "count": count})
}

// ListResetRequests returns the pending reset queue
func (h *AccountHandler) ListResetRequests(c *gin.Context) {
	reqs, err := h.accounts.ListResetRequests(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reqs), "requests": reqs})
}

// ResolveReset applies a new secret and retires the reset request
func (h *AccountHandler) ResolveReset(c *gin.Context) {
	var req ResolveResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.accounts.ResolveReset(c.Request.Context(), middleware.CurrentUser(c), c.Param("requestId"), req.Password); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset resolved"})
}
