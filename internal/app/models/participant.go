package models

import "time"

// Participant is a person enrolled into a project. Participants are soft
// removed (marked inactive) so historical attendance and checklist data
// keeps resolving.
type Participant struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"projectId" db:"project_id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     *string   `json:"email,omitempty" db:"email"` // Nullable
	Phone     *string   `json:"phone,omitempty" db:"phone"` // Nullable
	Role      *string   `json:"role,omitempty" db:"role"`   // Free-form title, nullable
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Group is a named collection of participants within a project. A
// participant may belong to zero, one, or multiple groups.
type Group struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"projectId" db:"project_id"`
	Name      string    `json:"name" db:"name"`
	Color     *string   `json:"color,omitempty" db:"color"` // Hex tag, nullable
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Members []*Participant `json:"members,omitempty"`
}

// GroupMember is the join row between a group and a participant.
type GroupMember struct {
	ID            int64     `json:"id" db:"id"`
	GroupID       int64     `json:"groupId" db:"group_id"`
	ParticipantID int64     `json:"participantId" db:"participant_id"`
	AddedAt       time.Time `json:"addedAt" db:"added_at"`
}
