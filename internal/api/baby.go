package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/sproutspoon/backend/internal/service"
	"github.com/pageza/sproutspoon/backend/internal/types"
)

type BabyHandler struct {
	babyService service.IBabyService
}

func NewBabyHandler(babyService service.IBabyService) *BabyHandler {
	return &BabyHandler{babyService: babyService}
}

// RegisterRoutes expects a router group that already carries AuthMiddleware.
func (h *BabyHandler) RegisterRoutes(router *gin.RouterGroup) {
	babies := router.Group("/babies")
	{
		babies.POST("", h.CreateBaby)
		babies.GET("", h.ListBabies)
		babies.GET("/:baby_id", h.GetBaby)
		babies.PUT("/:baby_id", h.UpdateBaby)
		babies.DELETE("/:baby_id", h.DeleteBaby)
	}
}

func (h *BabyHandler) CreateBaby(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.CreateBabyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baby, err := h.babyService.CreateBaby(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, baby)
}

func (h *BabyHandler) ListBabies(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	babies, err := h.babyService.ListBabies(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list baby profiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"babies": babies})
}

func (h *BabyHandler) GetBaby(c *gin.Context) {
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

	baby, err := h.babyService.GetBaby(c.Request.Context(), userID, babyID)
	if err != nil {
		if errors.Is(err, service.ErrBabyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Baby profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get baby profile"})
		return
	}

	c.JSON(http.StatusOK, baby)
}

func (h *BabyHandler) UpdateBaby(c *gin.Context) {
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

	var req types.UpdateBabyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baby, err := h.babyService.UpdateBaby(c.Request.Context(), userID, babyID, &req)
	if err != nil {
		if errors.Is(err, service.ErrBabyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Baby profile not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, baby)
}

func (h *BabyHandler) DeleteBaby(c *gin.Context) {
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

	if err := h.babyService.DeleteBaby(c.Request.Context(), userID, babyID); err != nil {
		if errors.Is(err, service.ErrBabyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Baby profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete baby profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Baby profile deleted"})
}
