package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CypherScript is the registry record for a generated script artifact,
// upserted by script name: re-generating under the same name refreshes
// path, size and timestamp instead of inserting a duplicate.
type CypherScript struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ScriptName    string     `gorm:"column:script_name;not null;uniqueIndex" json:"script_name"`
	FilePath      string     `gorm:"column:file_path;not null" json:"file_path"`
	FileSizeKB    int64      `gorm:"column:file_size_kb;not null;default:0" json:"file_size_kb"`
	LastUpdatedAt time.Time  `gorm:"column:last_updated_at;not null" json:"last_updated_at"`
	LastRunAt     *time.Time `gorm:"column:last_run_time" json:"last_run_time,omitempty"`
}

func (CypherScript) TableName() string { return "cypher_scripts" }

func (s *CypherScript) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
