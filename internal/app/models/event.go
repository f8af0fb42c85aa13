package models

import "time"

// Event is a scheduled session in a project calendar. An event carries two
// membership sources: direct attendee rows and attached groups whose
// members attend by inference. Events are never silently deleted while
// attendance history references them.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	ProjectID   int64     `json:"projectId" db:"project_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	StartsAt    time.Time `json:"startsAt" db:"starts_at"`
	EndsAt      time.Time `json:"endsAt" db:"ends_at"`
	CourseID    *int64    `json:"courseId,omitempty" db:"course_id"` // Nullable
	Location    *string   `json:"location,omitempty" db:"location"`  // Nullable
	IsArchived  bool      `json:"isArchived" db:"is_archived"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course    *Course          `json:"course,omitempty"`
	Attendees []*EventAttendee `json:"attendees,omitempty"`
	Groups    []*Group         `json:"groups,omitempty"`
}

// EventAttendee links a participant directly to an event. A direct row is
// authoritative over any group-derived membership for the same participant.
type EventAttendee struct {
	ID            int64            `json:"id" db:"id"`
	EventID       int64            `json:"eventId" db:"event_id"`
	ParticipantID int64            `json:"participantId" db:"participant_id"`
	Status        AttendanceStatus `json:"attendance_status" db:"status"`
	EnrolledAt    time.Time        `json:"enrolledAt" db:"enrolled_at"`

	// Relations (populated when needed)
	Participant *Participant `json:"participant,omitempty"`
}

// EventGroup attaches a group to an event. Membership is live: changing
// the group's member list changes attendance-by-inference without any
// EventAttendee row, unless a participant is later promoted to direct.
type EventGroup struct {
	ID         int64     `json:"id" db:"id"`
	EventID    int64     `json:"eventId" db:"event_id"`
	GroupID    int64     `json:"groupId" db:"group_id"`
	AttachedAt time.Time `json:"attachedAt" db:"attached_at"`

	// Relations (populated when needed)
	Group *Group `json:"group,omitempty"`
}
