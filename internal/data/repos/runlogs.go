package repos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/graphbridge/internal/domain"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
)

type RunLogRepo interface {
	Start(ctx context.Context, tx *gorm.DB) (*types.RunLog, error)
	Complete(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, summary *types.RunSummary) error
}

type runLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRunLogRepo(db *gorm.DB, baseLog *logger.Logger) RunLogRepo {
	return &runLogRepo{db: db, log: baseLog.With("repo", "RunLogRepo")}
}

func (r *runLogRepo) Start(ctx context.Context, tx *gorm.DB) (*types.RunLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &types.RunLog{
		StartedAt: time.Now().UTC(),
		Status:    types.RunStatusRunning,
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *runLogRepo) Complete(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, summary *types.RunSummary) error {
	t := tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"run_end_time": now,
		"status":       status,
	}
	if summary != nil {
		raw, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		updates["summary"] = datatypes.JSON(raw)
	}
	return t.WithContext(ctx).
		Model(&types.RunLog{}).
		Where("id = ?", id).
		Updates(updates).Error
}
