package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/advisorgraph-backend/internal/http/handlers"
	"github.com/yungbote/advisorgraph-backend/internal/http/middleware"
)

type RouterConfig struct {
	ServiceName       string
	AllowedOrigins    []string
	HealthHandler     *handlers.HealthHandler
	GraphHandler      *handlers.GraphHandler
	FilterHandler     *handlers.FilterHandler
	SessionMiddleware *middleware.SessionMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.SessionHeader},
		ExposeHeaders:    []string{middleware.SessionHeader},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.SessionMiddleware.Attach())
	{
		api.GET("/graph", cfg.GraphHandler.GetGraph)
		api.POST("/graph/filters/apply", cfg.GraphHandler.ApplyFilters)
		api.POST("/graph/filters/regions", cfg.GraphHandler.ChangeRegions)
		api.POST("/graph/filters/reset", cfg.GraphHandler.ResetFilters)
		api.GET("/graph/filters", cfg.FilterHandler.GetFilters)
		api.GET("/graph/filters/options", cfg.FilterHandler.GetFilterOptions)
		api.POST("/graph/validate", cfg.GraphHandler.Validate)
		api.POST("/graph/repair", cfg.GraphHandler.Repair)
	}

	return router
}
