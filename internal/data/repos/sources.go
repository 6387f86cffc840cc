package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/graphbridge/internal/domain"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
)

type SourceDatabaseRepo interface {
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.SourceDatabase, error)
	TouchLastAccessed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type sourceDatabaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourceDatabaseRepo(db *gorm.DB, baseLog *logger.Logger) SourceDatabaseRepo {
	return &sourceDatabaseRepo{db: db, log: baseLog.With("repo", "SourceDatabaseRepo")}
}

func (r *sourceDatabaseRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.SourceDatabase, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.SourceDatabase
	if err := t.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sourceDatabaseRepo) TouchLastAccessed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	return t.WithContext(ctx).
		Model(&types.SourceDatabase{}).
		Where("id = ?", id).
		Update("last_accessed", now).Error
}
