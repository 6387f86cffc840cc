package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NodeLabelMapping maps a source table name to the node label its rows are
// created under. Table names are unique among active mappings; tables
// without a mapping fall back to a capitalized table name.
type NodeLabelMapping struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Table     string    `gorm:"column:table_name;not null;uniqueIndex" json:"table_name"`
	NodeLabel string    `gorm:"column:node_label;not null" json:"node_label"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (NodeLabelMapping) TableName() string { return "node_label_mappings" }

func (m *NodeLabelMapping) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RelationshipMapping declares how two node labels are connected for one
// source. When both junction fields are set the match pattern names three
// entities (from, junction, to); the created edge always runs from-label to
// to-label. FromAlias/ToAlias override the default variable name (the
// lowercased first letter of the label) when single-letter defaults would
// collide.
type RelationshipMapping struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SourceName       string    `gorm:"column:source_name;not null;index:idx_relationship_source_order,priority:1" json:"source_name"`
	RelationshipType string    `gorm:"column:relationship_type;not null" json:"relationship_type"`
	FromLabel        string    `gorm:"column:from_label;not null" json:"from_label"`
	ToLabel          string    `gorm:"column:to_label;not null" json:"to_label"`
	FromAlias        string    `gorm:"column:from_alias" json:"from_alias,omitempty"`
	ToAlias          string    `gorm:"column:to_alias" json:"to_alias,omitempty"`
	JoinCondition    string    `gorm:"column:join_condition;type:text;not null" json:"join_condition"`
	JunctionTable    string    `gorm:"column:junction_table" json:"junction_table,omitempty"`
	JunctionLabel    string    `gorm:"column:junction_label" json:"junction_label,omitempty"`
	Description      string    `gorm:"column:description;type:text" json:"description,omitempty"`
	ExecutionOrder   int       `gorm:"column:execution_order;not null;default:0;index:idx_relationship_source_order,priority:2" json:"execution_order"`
	IsActive         bool      `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (RelationshipMapping) TableName() string { return "relationship_mappings" }

func (m *RelationshipMapping) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// FieldExclusionRule drops a column from extraction for one source table.
// Excluded columns never appear as node properties.
type FieldExclusionRule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SourceID   uuid.UUID `gorm:"type:uuid;column:source_id;not null;index" json:"source_id"`
	Table      string    `gorm:"column:table_name;not null" json:"table_name"`
	ColumnName string    `gorm:"column:column_name;not null" json:"column_name"`
	IsExcluded bool      `gorm:"column:is_excluded;not null;default:true" json:"is_excluded"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (FieldExclusionRule) TableName() string { return "field_exclusion_rules" }

func (r *FieldExclusionRule) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
