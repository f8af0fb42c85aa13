package models

import "time"

// Checklist is a project-level list of items tracked per participant.
type Checklist struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"projectId" db:"project_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Items []*ChecklistItem `json:"items,omitempty"`
}

// ChecklistItem is one entry of a checklist.
type ChecklistItem struct {
	ID          int64  `json:"id" db:"id"`
	ChecklistID int64  `json:"checklistId" db:"checklist_id"`
	Label       string `json:"label" db:"label"`
	Position    int    `json:"position" db:"position"`
}

// ParticipantChecklistProgress marks a checklist item done for one
// participant. Absence of a row means not done.
type ParticipantChecklistProgress struct {
	ID            int64      `json:"id" db:"id"`
	ItemID        int64      `json:"itemId" db:"item_id"`
	ParticipantID int64      `json:"participantId" db:"participant_id"`
	CompletedAt   *time.Time `json:"completedAt,omitempty" db:"completed_at"`
}
