package attendance

import (
	"strconv"
	"strings"

	"github.com/kaan/traintrack/internal/app/models"
)

// Record is a participant-like row from either membership source of an
// event: a direct attendee join row or a group-membership join row. The
// two sources carry overlapping but differently-shaped identity fields,
// so every field that may identify the person is optional here and
// Identity applies one fallback chain over all of them.
type Record struct {
	// EnrolleeID is the participant reference carried by a direct
	// attendee join row.
	EnrolleeID *int64
	// Participant is the nested participant object, when the source
	// includes one.
	Participant *ParticipantRef
	// ID is the join row's own identifier.
	ID *int64
	// Email is the flat email field of sources that carry no nested
	// participant.
	Email string

	FirstName string
	LastName  string
	Role      *string

	// Status is the raw attendance value as stored. May be empty or
	// unrecognized; ProjectStatus defaults it for display.
	Status models.AttendanceStatus
}

// ParticipantRef is the nested participant identity of a Record.
type ParticipantRef struct {
	ID    *int64
	Email string
}

// Identity resolves one stable identifier for the record. The fallback
// order is fixed and must be the same everywhere deduplication happens:
// enrollee id, nested participant id, nested participant email, join-row
// id, flat email. The second return is false when no field yields an
// identity; such records are excluded from merges rather than given a
// synthetic id, which could collide and falsely deduplicate.
func (r Record) Identity() (string, bool) {
	if r.EnrolleeID != nil {
		return strconv.FormatInt(*r.EnrolleeID, 10), true
	}
	if r.Participant != nil {
		if r.Participant.ID != nil {
			return strconv.FormatInt(*r.Participant.ID, 10), true
		}
		if email := normalizeEmail(r.Participant.Email); email != "" {
			return email, true
		}
	}
	if r.ID != nil {
		return strconv.FormatInt(*r.ID, 10), true
	}
	if email := normalizeEmail(r.Email); email != "" {
		return email, true
	}
	return "", false
}

// participantID returns the best participant reference the record carries,
// or 0 when it has none.
func (r Record) participantID() int64 {
	if r.EnrolleeID != nil {
		return *r.EnrolleeID
	}
	if r.Participant != nil && r.Participant.ID != nil {
		return *r.Participant.ID
	}
	return 0
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
