package dto

import (
	"github.com/kaan/traintrack/internal/app/attendance"
	"github.com/kaan/traintrack/internal/app/models"
)

// CreateProjectRequest creates a training program
type CreateProjectRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	StartDate    *string `json:"startDate" example:"2026-09-01"`
	EndDate      *string `json:"endDate" example:"2026-12-18"`
	CurriculumID *int64  `json:"curriculumId"`
}

// UpdateProjectRequest updates a training program
type UpdateProjectRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	CurriculumID *int64  `json:"curriculumId"`
}

// AgendaEvent is one event of the project agenda with its merged
// attendee list already resolved.
type AgendaEvent struct {
	Event     *models.Event          `json:"event"`
	Groups    []*models.Group        `json:"groups"`
	Attendees []*attendance.Resolved `json:"attendees"`
	Capacity  attendance.Capacity    `json:"capacity"`
}

// AgendaResponse is the denormalized project agenda: every event with
// groups and resolved participants, plus the project group roster.
type AgendaResponse struct {
	ProjectID int64           `json:"projectId"`
	Events    []*AgendaEvent  `json:"events"`
	Groups    []*models.Group `json:"groups"`
}

// DailyFocusRequest upserts the focus text for a project day.
type DailyFocusRequest struct {
	Focus string `json:"focus" binding:"required"`
}

// DailyFocusResponse returns the focus text for a project day.
type DailyFocusResponse struct {
	ProjectID int64  `json:"projectId"`
	Date      string `json:"date" example:"2026-08-30"`
	Focus     string `json:"focus"`
}
