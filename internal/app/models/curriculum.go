package models

import "time"

// Content hierarchy: curriculum -> courses -> modules -> activities.
// Read context for events and progress; the reconciliation logic only
// depends on Course.MaxParticipants.

// Curriculum is the top of the training content hierarchy.
type Curriculum struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Courses []*Course `json:"courses,omitempty"`
}

// Course belongs to a curriculum and optionally caps enrollment.
type Course struct {
	ID              int64   `json:"id" db:"id"`
	CurriculumID    int64   `json:"curriculumId" db:"curriculum_id"`
	Name            string  `json:"name" db:"name"`
	Description     *string `json:"description,omitempty" db:"description"`         // Nullable
	MaxParticipants *int    `json:"maxParticipants,omitempty" db:"max_participants"` // Nullable, no cap when nil
	Position        int     `json:"position" db:"position"`

	// Relations (populated when needed)
	Modules []*Module `json:"modules,omitempty"`
}

// Module groups activities inside a course.
type Module struct {
	ID       int64  `json:"id" db:"id"`
	CourseID int64  `json:"courseId" db:"course_id"`
	Name     string `json:"name" db:"name"`
	Position int    `json:"position" db:"position"`

	// Relations (populated when needed)
	Activities []*Activity `json:"activities,omitempty"`
}

// Activity is the leaf unit of training content.
type Activity struct {
	ID              int64   `json:"id" db:"id"`
	ModuleID        int64   `json:"moduleId" db:"module_id"`
	Name            string  `json:"name" db:"name"`
	DurationMinutes *int    `json:"durationMinutes,omitempty" db:"duration_minutes"` // Nullable
	Position        int     `json:"position" db:"position"`
	Notes           *string `json:"notes,omitempty" db:"notes"` // Nullable
}
