package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/advisorgraph-backend/internal/domain/querylog"
	"github.com/yungbote/advisorgraph-backend/internal/platform/envutil"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPostgresService connects to the audit database. Returns (nil, nil) when
// POSTGRES_HOST is unset; the query log then degrades to a no-op.
func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.GetEnv("POSTGRES_HOST", "", log)
	if host == "" {
		serviceLog.Info("POSTGRES_HOST unset, query audit log disabled")
		return nil, nil
	}
	port := envutil.GetEnv("POSTGRES_PORT", "5432", log)
	user := envutil.GetEnv("POSTGRES_USER", "postgres", log)
	password := envutil.GetEnv("POSTGRES_PASSWORD", "", log)
	name := envutil.GetEnv("POSTGRES_NAME", "advisorgraph", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	if s == nil {
		return nil
	}
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(&querylog.QueryLog{}); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}
