package handlers

import (
	"net/http"

	"canteen-api/middleware"
	"canteen-api/services"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type SubmitFeedbackRequest struct {
	OrderCode string `json:"order_code" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// SubmitFeedback records a rating for one of the caller's orders
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fb, err := h.feedback.Submit(c.Request.Context(), middleware.CurrentUser(c), req.OrderCode, req.Rating, req.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted", "feedback": fb})
}

// ListFeedback returns all feedback (staff)
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	fbs, err := h.feedback.ListAll(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(fbs), "feedback": fbs})
}
