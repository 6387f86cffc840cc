package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/graphbridge/internal/domain"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
)

type TableLogRepo interface {
	Start(ctx context.Context, tx *gorm.DB, runID, sourceID uuid.UUID, tableName string) (*types.TableLog, error)
	Finish(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, rowsProcessed int64, errorMessage string) error
}

type tableLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTableLogRepo(db *gorm.DB, baseLog *logger.Logger) TableLogRepo {
	return &tableLogRepo{db: db, log: baseLog.With("repo", "TableLogRepo")}
}

func (r *tableLogRepo) Start(ctx context.Context, tx *gorm.DB, runID, sourceID uuid.UUID, tableName string) (*types.TableLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &types.TableLog{
		RunID:         runID,
		SourceID:      sourceID,
		Table:         tableName,
		Status:        types.TableStatusRunning,
		IsProgressing: true,
		StartedAt:     time.Now().UTC(),
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *tableLogRepo) Finish(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, rowsProcessed int64, errorMessage string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	return t.WithContext(ctx).
		Model(&types.TableLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"is_progressing": false,
			"is_done":        true,
			"end_time":       now,
			"rows_processed": rowsProcessed,
			"error_message":  errorMessage,
		}).Error
}
