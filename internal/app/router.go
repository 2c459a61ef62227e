package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/advisorgraph-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:       "advisorgraph-backend",
		AllowedOrigins:    cfg.AllowedOrigins,
		HealthHandler:     h.Health,
		GraphHandler:      h.Graph,
		FilterHandler:     h.Filters,
		SessionMiddleware: h.Session,
	})
}
