package routes

import (
	"chartassist-api/api/handlers"
	"chartassist-api/api/middleware"
	"chartassist-api/internal/llm"
	"chartassist-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, logger *logger.Logger, chartService llm.ChartService) {
	// Add middleware
	router.Use(middleware.RequestLogging(logger))
	router.Use(gin.Recovery())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(logger)
	chartsHandler := handlers.NewChartsHandler(chartService, logger)

	// Setup routes
	router.GET("/health", healthHandler.Check)

	router.GET("/charts-config", chartsHandler.GetChartsConfig)
	router.POST("/choose-charts", chartsHandler.ChooseCharts)
	router.POST("/suggest-charts", chartsHandler.SuggestCharts)
	router.POST("/map-schema", chartsHandler.MapSchema)
	router.POST("/build-queries", chartsHandler.BuildQueries)
}
