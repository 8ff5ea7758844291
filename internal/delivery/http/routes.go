package http

import (
	"github.com/gin-gonic/gin"

	"github.com/specwise/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		phones := v1.Group("/phones")
		{
			phones.GET("/search", handler.SearchPhones)
			phones.GET("/:title", handler.GetPhone)
		}

		v1.POST("/compare", handler.Compare)
		v1.POST("/compare/summary", handler.CompareSummary)

		session := v1.Group("/session")
		{
			session.GET("", handler.GetSession)
			session.POST("/reset", handler.ResetSession)
			session.PUT("/slots/:slot", handler.SelectSlot)
			session.POST("/slots/:slot/query", handler.UpdateSlotQuery)
		}
	}

	return router
}
