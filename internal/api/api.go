package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/sproutspoon/backend/internal/engine"
	"github.com/pageza/sproutspoon/backend/internal/middleware"
	"github.com/pageza/sproutspoon/backend/internal/service"
)

// Handlers bundles the service dependencies the HTTP layer needs.
type Handlers struct {
	Auth            service.IAuthService
	Babies          service.IBabyService
	Recipes         service.IRecipeService
	Feedback        service.IFeedbackService
	Recommendations service.IRecommendationService
	Images          service.IImageService
	Redis           *redis.Client
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "SproutSpoon API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, h Handlers) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	// Rate limiters are optional: without Redis the API runs unthrottled.
	var creationLimiter, modificationLimiter, recommendationLimiter *middleware.RateLimiter
	if h.Redis != nil {
		creationLimiter = middleware.NewRecipeCreationRateLimiter(h.Redis)
		modificationLimiter = middleware.NewRecipeModificationRateLimiter(h.Redis)
		recommendationLimiter = middleware.NewRecommendationRateLimiter(h.Redis)
	} else {
		log.Printf("[API] Redis unavailable, rate limiting disabled")
	}

	authHandler := NewAuthHandler(h.Auth)
	babyHandler := NewBabyHandler(h.Babies)
	recipeHandler := NewRecipeHandler(h.Recipes, h.Images, h.Auth, creationLimiter, modificationLimiter)
	feedbackHandler := NewFeedbackHandler(h.Feedback, h.Auth)
	recommendationHandler := NewRecommendationHandler(h.Recommendations, h.Auth, recommendationLimiter)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	feedbackHandler.RegisterRoutes(v1)
	recommendationHandler.RegisterRoutes(v1)

	// Baby profile routes (all authenticated)
	babyGroup := v1.Group("")
	babyGroup.Use(middleware.AuthMiddleware(h.Auth))
	babyHandler.RegisterRoutes(babyGroup)
}

// currentUserID extracts the authenticated user's ID set by AuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// handleEngineError maps recommendation pipeline errors to HTTP responses.
func handleEngineError(c *gin.Context, err error) {
	var validationErr *engine.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}
	var configErr *engine.ConfigurationError
	if errors.As(err, &configErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": configErr.Error()})
		return
	}
	if errors.Is(err, service.ErrBabyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Baby profile not found"})
		return
	}
	log.Printf("[API] recommendation pipeline error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
}
