package querylog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QueryLog records one applied graph query: the criteria that ran, what came
// back, and how the performance gate ruled. Written on every apply; purely an
// audit surface, never read back into the pipeline.
type QueryLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`

	Criteria datatypes.JSON `gorm:"column:criteria;type:jsonb;not null" json:"criteria"`

	NodeCount int    `gorm:"column:node_count;not null" json:"node_count"`
	EdgeCount int    `gorm:"column:edge_count;not null" json:"edge_count"`
	GateMode  string `gorm:"column:gate_mode;type:text;not null;index" json:"gate_mode"`
	Estimated bool   `gorm:"column:estimated;not null" json:"estimated"`

	DurationMS int64 `gorm:"column:duration_ms;not null" json:"duration_ms"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (QueryLog) TableName() string { return "query_log" }
