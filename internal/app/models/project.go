package models

import "time"

// Project represents a training program. Every participant, group, event
// and checklist belongs to exactly one project.
type Project struct {
	ID           int64      `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description,omitempty" db:"description"` // Nullable
	StartDate    *time.Time `json:"startDate,omitempty" db:"start_date"`
	EndDate      *time.Time `json:"endDate,omitempty" db:"end_date"`
	CurriculumID *int64     `json:"curriculumId,omitempty" db:"curriculum_id"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Curriculum *Curriculum `json:"curriculum,omitempty"`
}

// DailyFocus is the free-text focus note of a project for one calendar day.
// Keyed by (project, ISO date); at most one row per key.
type DailyFocus struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"projectId" db:"project_id"`
	FocusDate string    `json:"date" db:"focus_date"` // YYYY-MM-DD
	Focus     string    `json:"focus" db:"focus"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
