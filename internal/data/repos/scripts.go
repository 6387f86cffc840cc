package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/graphbridge/internal/domain"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
)

type CypherScriptRepo interface {
	// Upsert registers a generated script keyed by name. Re-generating under
	// the same name refreshes path, size and timestamp.
	Upsert(ctx context.Context, tx *gorm.DB, scriptName, filePath string, fileSizeKB int64) (*types.CypherScript, error)
	// Latest returns the most recently updated script record, or nil.
	Latest(ctx context.Context, tx *gorm.DB) (*types.CypherScript, error)
	TouchLastRun(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type cypherScriptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCypherScriptRepo(db *gorm.DB, baseLog *logger.Logger) CypherScriptRepo {
	return &cypherScriptRepo{db: db, log: baseLog.With("repo", "CypherScriptRepo")}
}

func (r *cypherScriptRepo) Upsert(ctx context.Context, tx *gorm.DB, scriptName, filePath string, fileSizeKB int64) (*types.CypherScript, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &types.CypherScript{
		ScriptName:    scriptName,
		FilePath:      filePath,
		FileSizeKB:    fileSizeKB,
		LastUpdatedAt: time.Now().UTC(),
	}
	if err := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "script_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"file_path", "file_size_kb", "last_updated_at"}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	// On conflict the insert candidate's ID is discarded; re-read the
	// canonical row.
	var out types.CypherScript
	if err := t.WithContext(ctx).
		Where("script_name = ?", scriptName).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cypherScriptRepo) Latest(ctx context.Context, tx *gorm.DB) (*types.CypherScript, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []*types.CypherScript
	if err := t.WithContext(ctx).
		Order("last_updated_at DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *cypherScriptRepo) TouchLastRun(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	return t.WithContext(ctx).
		Model(&types.CypherScript{}).
		Where("id = ?", id).
		Update("last_run_time", now).Error
}
