package app

import (
	"github.com/yungbote/advisorgraph-backend/internal/http/handlers"
	"github.com/yungbote/advisorgraph-backend/internal/http/middleware"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *handlers.HealthHandler
	Graph   *handlers.GraphHandler
	Filters *handlers.FilterHandler
	Session *middleware.SessionMiddleware
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	return Handlers{
		Health:  handlers.NewHealthHandler(),
		Graph:   handlers.NewGraphHandler(log, svcs.Graph, svcs.Sessions),
		Filters: handlers.NewFilterHandler(log, svcs.Options, svcs.Sessions),
		Session: middleware.NewSessionMiddleware(log),
	}
}
