package repos

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/graphbridge/internal/domain"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
)

type NodeLabelMappingRepo interface {
	// ActiveLabels returns the table-name to node-label map. Loaded once per
	// run; the snapshot is immutable for the run's duration.
	ActiveLabels(ctx context.Context, tx *gorm.DB) (map[string]string, error)
}

type nodeLabelMappingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNodeLabelMappingRepo(db *gorm.DB, baseLog *logger.Logger) NodeLabelMappingRepo {
	return &nodeLabelMappingRepo{db: db, log: baseLog.With("repo", "NodeLabelMappingRepo")}
}

func (r *nodeLabelMappingRepo) ActiveLabels(ctx context.Context, tx *gorm.DB) (map[string]string, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []*types.NodeLabelMapping
	if err := t.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, m := range rows {
		out[m.Table] = m.NodeLabel
	}
	return out, nil
}

type RelationshipMappingRepo interface {
	// ActiveBySource groups active rules per source, ascending execution
	// order. Ties keep insertion order.
	ActiveBySource(ctx context.Context, tx *gorm.DB) (map[string][]*types.RelationshipMapping, error)
}

type relationshipMappingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipMappingRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipMappingRepo {
	return &relationshipMappingRepo{db: db, log: baseLog.With("repo", "RelationshipMappingRepo")}
}

func (r *relationshipMappingRepo) ActiveBySource(ctx context.Context, tx *gorm.DB) (map[string][]*types.RelationshipMapping, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []*types.RelationshipMapping
	if err := t.WithContext(ctx).
		Where("is_active = ?", true).
		Order("execution_order ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := map[string][]*types.RelationshipMapping{}
	for _, m := range rows {
		out[m.SourceName] = append(out[m.SourceName], m)
	}
	return out, nil
}
