package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/sproutspoon/backend/internal/api"
	"github.com/pageza/sproutspoon/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(handlers api.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	api.RegisterRoutes(router, handlers)
	return router
}
