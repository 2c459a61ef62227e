package querylog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/advisorgraph-backend/internal/domain/querylog"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
)

type QueryLogRepo interface {
	Create(ctx context.Context, row *types.QueryLog) error
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*types.QueryLog, error)
}

type queryLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewQueryLogRepo returns nil when db is nil; callers treat a nil repo as a
// disabled audit log.
func NewQueryLogRepo(db *gorm.DB, baseLog *logger.Logger) QueryLogRepo {
	if db == nil {
		return nil
	}
	return &queryLogRepo{db: db, log: baseLog.With("repo", "QueryLogRepo")}
}

func (r *queryLogRepo) Create(ctx context.Context, row *types.QueryLog) error {
	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *queryLogRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*types.QueryLog, error) {
	if sessionID == uuid.Nil {
		return nil, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []*types.QueryLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
