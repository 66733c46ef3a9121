package routes

import (
	"teachmatch-dashboard/internal/api/handlers"
	"teachmatch-dashboard/internal/api/middleware"
	"teachmatch-dashboard/internal/config"
	"teachmatch-dashboard/internal/interview"
	"teachmatch-dashboard/internal/search"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, sessions *search.Controller, negotiations *interview.Controller) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler)
		health.GET("/live", handlers.LivenessHandler)
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		// Search session routes
		sessionsGroup := v1.Group("/search/sessions")
		{
			sessionsGroup.GET("/:id", handlers.GetSearchSessionHandler(sessions))
			sessionsGroup.PUT("/:id/staged", handlers.StageFiltersHandler(sessions))
			sessionsGroup.POST("/:id/commit", handlers.CommitSearchHandler(sessions))
			sessionsGroup.POST("/:id/discard", handlers.DiscardFiltersHandler(sessions))
			sessionsGroup.POST("/:id/sync", handlers.SyncSearchHandler(sessions))
		}

		// Interview negotiation routes
		applications := v1.Group("/applications")
		{
			applications.GET("/:id/interview", handlers.GetInterviewHandler(negotiations))
			applications.POST("/:id/interview/accept", handlers.AcceptSlotHandler(negotiations))
			applications.POST("/:id/interview/propose", handlers.ProposeAlternativeHandler(negotiations))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "TeachMatch Dashboard",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
