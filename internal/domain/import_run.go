package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportRun is the stored summary of one committed workbook import.
// Dry runs are not stored.
type ImportRun struct {
	ID              uuid.UUID     `json:"id"`
	Source          string        `json:"source"`
	Total           int           `json:"total"`
	Rejected        int           `json:"rejected"`
	Imported        int           `json:"imported"`
	Skipped         int           `json:"skipped"`
	Failed          int           `json:"failed"`
	CreatedSubjects int           `json:"created_subjects"`
	CreatedCourses  int           `json:"created_courses"`
	Errors          []string      `json:"errors,omitempty"`
	Duration        time.Duration `json:"duration_ns"`
	StartedAt       time.Time     `json:"started_at"`
}
