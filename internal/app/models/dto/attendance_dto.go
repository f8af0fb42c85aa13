package dto

import (
	"github.com/kaan/traintrack/internal/app/attendance"
)

// AttendeeListResponse is the merged, deduplicated attendee list of an
// event plus its capacity block.
type AttendeeListResponse struct {
	EventID   int64                  `json:"eventId"`
	Attendees []*attendance.Resolved `json:"attendees"`
	Capacity  attendance.Capacity    `json:"capacity"`
}

// BatchAddRequest adds participants and/or groups to an event. Items are
// processed sequentially in the given order.
type BatchAddRequest struct {
	ParticipantIDs []int64 `json:"participantIds"`
	GroupIDs       []int64 `json:"groupIds"`
}

// BatchAddFailure describes one failed item of a batch add.
type BatchAddFailure struct {
	Kind   string `json:"kind" enums:"participant,group"`
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// BatchAddReport aggregates the outcome of a batch add. Failures are
// counted in the UI-facing summary and itemized here for logs/debugging.
type BatchAddReport struct {
	Requested      int               `json:"requested"`
	Added          int               `json:"added"`
	AlreadyPresent int               `json:"alreadyPresent"`
	Failed         int               `json:"failed"`
	Failures       []BatchAddFailure `json:"failures,omitempty"`
}

// UpdateStatusRequest changes one participant's attendance status.
type UpdateStatusRequest struct {
	Status string `json:"attendance_status" binding:"required" example:"present" enums:"scheduled,present,absent,late"`
}

// MoveParticipantRequest transfers a participant to another event.
type MoveParticipantRequest struct {
	TargetEventID int64 `json:"targetEventId" binding:"required"`
}

// MoveGroupMemberRequest moves a participant between groups. A nil
// FromGroupID means the participant was in no group; a nil ToGroupID
// removes them from group membership entirely.
type MoveGroupMemberRequest struct {
	ParticipantID int64  `json:"participantId" binding:"required"`
	FromGroupID   *int64 `json:"fromGroupId"`
	ToGroupID     *int64 `json:"toGroupId"`
}
