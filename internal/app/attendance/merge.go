package attendance

import (
	"github.com/kaan/traintrack/internal/app/models"
)

// GroupMembers is one group attached to an event together with its
// current member records.
type GroupMembers struct {
	GroupID int64
	Name    string
	Members []Record
}

// Resolved is one entry of the merged attendee list, annotated with the
// membership source it came from.
type Resolved struct {
	Identity      string                  `json:"-"`
	ParticipantID int64                   `json:"participantId"`
	AttendeeID    *int64                  `json:"attendeeId,omitempty"` // direct join row id, needed for status updates
	FirstName     string                  `json:"firstName"`
	LastName      string                  `json:"lastName"`
	Role          *string                 `json:"role,omitempty"`
	IsDirect      bool                    `json:"isDirect"`
	FromGroupName string                  `json:"fromGroupName,omitempty"`
	Status        models.AttendanceStatus `json:"attendance_status"`
}

// Merge combines direct attendee records with group-derived records into
// one deduplicated list. Direct records are inserted first and are never
// overwritten: when a group member resolves to an identity a direct row
// already claimed, the group-derived record is skipped. Group-derived
// entries default to scheduled and carry the name of the group they came
// from.
//
// The returned list holds every resolvable identity exactly once, in
// insertion order (directs in input order, then group members in group
// then member order). The second return is the count of records dropped
// because no identity could be resolved for them.
func Merge(directs []Record, groups []GroupMembers) ([]*Resolved, int) {
	seen := make(map[string]*Resolved, len(directs))
	merged := make([]*Resolved, 0, len(directs))
	dropped := 0

	for _, rec := range directs {
		id, ok := rec.Identity()
		if !ok {
			dropped++
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		entry := &Resolved{
			Identity:      id,
			ParticipantID: rec.participantID(),
			AttendeeID:    rec.ID,
			FirstName:     rec.FirstName,
			LastName:      rec.LastName,
			Role:          rec.Role,
			IsDirect:      true,
			Status:        ProjectStatus(rec.Status),
		}
		seen[id] = entry
		merged = append(merged, entry)
	}

	for _, group := range groups {
		for _, rec := range group.Members {
			id, ok := rec.Identity()
			if !ok {
				dropped++
				continue
			}
			if _, exists := seen[id]; exists {
				// Direct wins; an earlier group claim wins over a
				// later one.
				continue
			}
			entry := &Resolved{
				Identity:      id,
				ParticipantID: rec.participantID(),
				FirstName:     rec.FirstName,
				LastName:      rec.LastName,
				Role:          rec.Role,
				IsDirect:      false,
				FromGroupName: group.Name,
				Status:        models.AttendanceScheduled,
			}
			seen[id] = entry
			merged = append(merged, entry)
		}
	}

	return merged, dropped
}
