package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/graphbridge/internal/domain"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
)

type FieldExclusionRuleRepo interface {
	// ExcludedColumns returns, per table, the set of columns to drop before
	// extraction for the given source.
	ExcludedColumns(ctx context.Context, tx *gorm.DB, sourceID uuid.UUID) (map[string]map[string]struct{}, error)
}

type fieldExclusionRuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFieldExclusionRuleRepo(db *gorm.DB, baseLog *logger.Logger) FieldExclusionRuleRepo {
	return &fieldExclusionRuleRepo{db: db, log: baseLog.With("repo", "FieldExclusionRuleRepo")}
}

func (r *fieldExclusionRuleRepo) ExcludedColumns(ctx context.Context, tx *gorm.DB, sourceID uuid.UUID) (map[string]map[string]struct{}, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []*types.FieldExclusionRule
	if err := t.WithContext(ctx).
		Where("source_id = ? AND is_excluded = ?", sourceID, true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := map[string]map[string]struct{}{}
	for _, rule := range rows {
		cols := out[rule.Table]
		if cols == nil {
			cols = map[string]struct{}{}
			out[rule.Table] = cols
		}
		cols[rule.ColumnName] = struct{}{}
	}
	return out, nil
}
