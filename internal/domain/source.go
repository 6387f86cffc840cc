package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SourceDatabase is a registered relational source to migrate. Rows are
// owned by the control store and read-only to the pipeline, except for the
// last-accessed touch on connect.
type SourceDatabase struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SourceName   string     `gorm:"column:source_name;not null;uniqueIndex" json:"source_name"`
	DBHost       string     `gorm:"column:db_host;not null" json:"db_host"`
	DBPort       int        `gorm:"column:db_port;not null;default:5432" json:"db_port"`
	DBName       string     `gorm:"column:db_name;not null" json:"db_name"`
	DBUser       string     `gorm:"column:db_user;not null" json:"db_user"`
	DBPassword   string     `gorm:"column:db_password;not null" json:"-"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	LastAccessed *time.Time `gorm:"column:last_accessed" json:"last_accessed,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (SourceDatabase) TableName() string { return "source_databases" }

func (s *SourceDatabase) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
