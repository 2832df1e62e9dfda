package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/sproutspoon/backend/internal/middleware"
	"github.com/pageza/sproutspoon/backend/internal/service"
	"github.com/pageza/sproutspoon/backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
	authService     service.IAuthService
}

func NewFeedbackHandler(feedbackService service.IFeedbackService, authService service.IAuthService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		authService:     authService,
	}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback")
	feedback.Use(middleware.AuthMiddleware(h.authService))
	{
		feedback.POST("", h.RecordFeedback)
		feedback.GET("/:baby_id", h.ListFeedback)
	}
}

// RecordFeedback appends one meal outcome to the baby's feedback log.
func (h *FeedbackHandler) RecordFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.feedbackService.RecordFeedback(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBabyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Baby profile not found"})
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	babyID, err := uuid.Parse(c.Param("baby_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid baby ID"})
		return
	}

	limit, offset := 50, 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	events, err := h.feedbackService.ListFeedback(c.Request.Context(), userID, babyID, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrBabyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Baby profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": events})
}
