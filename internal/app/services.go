package app

import (
	"github.com/yungbote/advisorgraph-backend/internal/data/graph"
	"github.com/yungbote/advisorgraph-backend/internal/data/repos/querylog"
	"github.com/yungbote/advisorgraph-backend/internal/db"
	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
	"github.com/yungbote/advisorgraph-backend/internal/services"
)

type Services struct {
	Sessions *services.SessionManager
	Graph    *services.GraphService
	Options  *services.FilterOptionsService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, pg *db.PostgresService) Services {
	store := graph.NewStore(clients.Neo4j, log)
	audit := querylog.NewQueryLogRepo(pg.DB(), log)

	defaults := graphmodel.DefaultFilterCriteria()
	if len(cfg.DefaultRegions) > 0 {
		defaults.Regions = append([]string(nil), cfg.DefaultRegions...)
	}

	return Services{
		Sessions: services.NewSessionManager(log, defaults, cfg.SessionTTL),
		Graph:    services.NewGraphService(log, store, audit),
		Options:  services.NewFilterOptionsService(log, store, clients.Cache, cfg.OptionsCacheTTL),
	}
}
