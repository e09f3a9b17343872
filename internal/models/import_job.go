package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImportJob tracks one multi-file import run. Files holds the marshalled
// per-file entries (etl.JobFile) including the worker inputs; Summary holds
// the marshalled etl.Summary once the job completes.
type ImportJob struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Status    string         `gorm:"index;not null" json:"status"`
	Files     datatypes.JSON `gorm:"type:jsonb" json:"files"`
	Summary   datatypes.JSON `gorm:"type:jsonb" json:"summary,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (ImportJob) TableName() string { return "import_jobs" }
