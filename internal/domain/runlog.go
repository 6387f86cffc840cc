package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

const (
	TableStatusRunning   = "running"
	TableStatusCompleted = "completed"
	TableStatusFailed    = "failed"
)

// RunLog tracks one generation run. Per-table failures do not fail the run;
// only an uncaught top-level error flips the status to failed.
type RunLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StartedAt time.Time      `gorm:"column:run_start_time;not null" json:"run_start_time"`
	EndedAt   *time.Time     `gorm:"column:run_end_time" json:"run_end_time,omitempty"`
	Status    string         `gorm:"column:status;not null;default:'running'" json:"status"`
	Summary   datatypes.JSON `gorm:"column:summary;type:jsonb" json:"summary,omitempty"`
}

func (RunLog) TableName() string { return "etl_run_logs" }

func (r *RunLog) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RunSummary is marshaled into RunLog.Summary at the end of a run.
type RunSummary struct {
	SourcesProcessed int    `json:"sources_processed"`
	TablesCompleted  int    `json:"tables_completed"`
	TablesFailed     int    `json:"tables_failed"`
	RowsProcessed    int64  `json:"rows_processed"`
	ScriptPath       string `json:"script_path,omitempty"`
}

// TableLog tracks processing of a single table within a run.
type TableLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RunID         uuid.UUID  `gorm:"type:uuid;column:log_id;not null;index" json:"log_id"`
	SourceID      uuid.UUID  `gorm:"type:uuid;column:source_id;not null;index" json:"source_id"`
	Table         string     `gorm:"column:table_name;not null" json:"table_name"`
	Status        string     `gorm:"column:status;not null;default:'running'" json:"status"`
	IsProgressing bool       `gorm:"column:is_progressing;not null;default:true" json:"is_progressing"`
	IsDone        bool       `gorm:"column:is_done;not null;default:false" json:"is_done"`
	StartedAt     time.Time  `gorm:"column:start_time;not null" json:"start_time"`
	EndedAt       *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	RowsProcessed int64      `gorm:"column:rows_processed;not null;default:0" json:"rows_processed"`
	ErrorMessage  string     `gorm:"column:error_message;type:text" json:"error_message,omitempty"`
}

func (TableLog) TableName() string { return "etl_table_logs" }

func (t *TableLog) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
