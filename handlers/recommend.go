package handlers

import (
	"encoding/json"
	"net/http"

	"canteen-api/middleware"
	"canteen-api/recommend"
	"canteen-api/services"

	"github.com/gin-gonic/gin"
)

// RecommendHandler bridges order history to the recommendation collaborator.
// The generator may be nil when no model is configured.
type RecommendHandler struct {
	orders    *services.OrderService
	generator recommend.Generator
}

func NewRecommendHandler(orders *services.OrderService, generator recommend.Generator) *RecommendHandler {
	return &RecommendHandler{orders: orders, generator: generator}
}

type RecommendRequest struct {
	DietaryPreferences string `json:"dietary_preferences"`
}

// historyEntry is the serialized shape the collaborator expects.
type historyEntry struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
	Date     string  `json:"date"`
}

// GetRecommendations serializes the caller's order history, asks the model
// and returns the parsed lines. Failures never touch any core state.
func (h *RecommendHandler) GetRecommendations(c *gin.Context) {
	if h.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recommendations are not configured"})
		return
	}

	var req RecommendRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	actor := middleware.CurrentUser(c)
	orders, err := h.orders.ListFor(c.Request.Context(), actor, services.ListFilter{})
	if err != nil {
		fail(c, err)
		return
	}

	var history []historyEntry
	for _, o := range orders {
		for _, l := range o.Lines {
			history = append(history, historyEntry{
				ItemName: l.ItemName,
				Quantity: l.Quantity,
				Total:    l.UnitPrice * float64(l.Quantity),
				Date:     o.PlacedAt.Format("2006-01-02"),
			})
		}
	}
	serialized, err := json.Marshal(history)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize order history"})
		return
	}

	text, err := h.generator.Generate(c.Request.Context(), string(serialized), req.DietaryPreferences)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Recommendation service failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommend.ParseLines(text)})
}
