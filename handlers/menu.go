package handlers

import (
	"net/http"
	"strconv"

	"canteen-api/middleware"
	"canteen-api/services"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	catalog *services.CatalogService
}

func NewMenuHandler(catalog *services.CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// GetAvailableMenu returns items orderable right now (public). The
// day-part filter is recomputed on every request.
func (h *MenuHandler) GetAvailableMenu(c *gin.Context) {
	items, err := h.catalog.ListAvailableNow(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

// GetFullMenu returns every item, offered or not — staff management view
func (h *MenuHandler) GetFullMenu(c *gin.Context) {
	items, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

// GetItem returns one menu item with portions and windows
func (h *MenuHandler) GetItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	item, err := h.catalog.GetItem(c.Request.Context(), uint(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// AddMenuItem creates a menu item (staff)
func (h *MenuHandler) AddMenuItem(c *gin.Context) {
	var req services.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.catalog.CreateItem(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "item": item})
}

// UpdateMenuItem replaces a menu item's details (staff)
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	var req services.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.catalog.UpdateItem(c.Request.Context(), middleware.CurrentUser(c), uint(id), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item (staff)
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	if err := h.catalog.DeleteItem(c.Request.Context(), middleware.CurrentUser(c), uint(id)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
