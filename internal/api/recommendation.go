package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/sproutspoon/backend/internal/engine"
	"github.com/pageza/sproutspoon/backend/internal/middleware"
	"github.com/pageza/sproutspoon/backend/internal/service"
	"github.com/pageza/sproutspoon/backend/internal/types"
)

type RecommendationHandler struct {
	recommendationService service.IRecommendationService
	authService           service.IAuthService
	limiter               *middleware.RateLimiter
}

func NewRecommendationHandler(recommendationService service.IRecommendationService, authService service.IAuthService, limiter *middleware.RateLimiter) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		authService:           authService,
		limiter:               limiter,
	}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/babies/:baby_id")
	group.Use(middleware.AuthMiddleware(h.authService))
	if h.limiter != nil {
		group.Use(h.limiter.RateLimitMiddleware())
	}
	{
		group.GET("/recommendations", h.Recommend)
		group.GET("/alternatives/:ingredient", h.Alternatives)
		group.GET("/retry-plan", h.RetryPlan)
		group.GET("/nutrition", h.Nutrition)
	}
}

// Recommend runs the full pipeline: safety filter, preference scoring,
// alternatives, retry suggestions and optionally the nutrient report.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
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

	var query types.RecommendationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.recommendationService.Recommend(c.Request.Context(), userID, babyID, engine.RecommendOptions{
		Count:            query.Count,
		MealType:         query.MealType,
		WindowDays:       query.WindowDays,
		IncludeNutrition: query.IncludeNutrition,
	})
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Alternatives suggests safe substitutes for one disliked ingredient.
func (h *RecommendationHandler) Alternatives(c *gin.Context) {
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

	ingredient := c.Param("ingredient")
	if ingredient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient name is required"})
		return
	}

	set, err := h.recommendationService.Alternatives(c.Request.Context(), userID, babyID, ingredient)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, set)
}

// RetryPlan returns per-ingredient retry suggestions derived from the
// rejection history.
func (h *RecommendationHandler) RetryPlan(c *gin.Context) {
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

	suggestions, err := h.recommendationService.RetryPlan(c.Request.Context(), userID, babyID)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// Nutrition aggregates accepted meals over a rolling window against the
// age-bracket targets.
func (h *RecommendationHandler) Nutrition(c *gin.Context) {
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

	var query types.NutritionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.recommendationService.NutritionReport(c.Request.Context(), userID, babyID, query.WindowDays)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
