package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImportLog is the audit record written after each committed CSV import batch.
// Errors and unmatched-grade warnings are kept in the metadata document.
type ImportLog struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	AddedStudents   int               `json:"added_students"`
	UpdatedStudents int               `json:"updated_students"`
	AddedGrades     int               `json:"added_grades"`
	ErrorCount      int               `json:"error_count"`
	WarningCount    int               `json:"warning_count"`
	Metadata        datatypes.JSONMap `json:"metadata"`
	CreatedAt       time.Time         `json:"created_at"`
}
