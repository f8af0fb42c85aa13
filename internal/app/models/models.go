package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin      RoleType = "ADMIN"
	RoleInstructor RoleType = "INSTRUCTOR"
)

// AttendanceStatus is the canonical attendance state of a participant for
// a single event. Scheduled is the only initial state; the remaining three
// are freely interchangeable until the event is archived.
type AttendanceStatus string

const (
	AttendanceScheduled AttendanceStatus = "scheduled"
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceLate      AttendanceStatus = "late"
)

// IsCanonical reports whether s is one of the four recognized states.
func (s AttendanceStatus) IsCanonical() bool {
	switch s {
	case AttendanceScheduled, AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}
