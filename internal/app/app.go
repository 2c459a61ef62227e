package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/advisorgraph-backend/internal/db"
	"github.com/yungbote/advisorgraph-backend/internal/observability"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
	"github.com/yungbote/advisorgraph-backend/internal/platform/neo4jdb"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Router   *gin.Engine
	Neo4j    *neo4jdb.Client
	Services Services

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "advisorgraph-backend",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	clients, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		// The audit log is a best-effort surface; the graph pipeline does
		// not depend on it.
		log.Warn("postgres init failed, query audit log disabled", "error", err)
		pg = nil
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Warn("postgres automigrate failed, query audit log disabled", "error", err)
		pg = nil
	}

	services := wireServices(log, cfg, clients, pg)
	handlers := wireHandlers(log, services)
	router := wireRouter(cfg, handlers)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Router:       router,
		Neo4j:        clients.Neo4j,
		Services:     services,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background maintenance (session sweeping).
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.Services.Sessions.Sweep()
			}
		}
	}()
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
	}
	if a.Neo4j != nil {
		_ = a.Neo4j.Close(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
