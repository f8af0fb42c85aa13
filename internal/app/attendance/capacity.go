package attendance

// CapacitySignal is the tri-state occupancy signal derived from the
// merged attendee count and a course-level participant limit.
type CapacitySignal string

const (
	CapacityUnder CapacitySignal = "under"
	CapacityNear  CapacitySignal = "near"
	CapacityFull  CapacitySignal = "at_capacity"
)

// NearCapacityRatio is the fill ratio at which an event with spots left is
// reported as near capacity.
const NearCapacityRatio = 0.8

// Capacity describes how full an event is relative to its course limit.
type Capacity struct {
	HasMaxLimit     bool           `json:"hasMaxLimit"`
	MaxParticipants *int           `json:"maxParticipants,omitempty"`
	IsAtMaxCapacity bool           `json:"isAtMaxCapacity"`
	SpotsRemaining  *int           `json:"spotsRemaining,omitempty"` // nil when unbounded
	Signal          CapacitySignal `json:"signal"`
}

// EvaluateCapacity computes the capacity block for a merged attendee count
// and an optional course maximum. A nil or non-positive maximum means no
// limit: never at capacity, unbounded spots.
func EvaluateCapacity(count int, maxParticipants *int) Capacity {
	if maxParticipants == nil || *maxParticipants <= 0 {
		return Capacity{Signal: CapacityUnder}
	}

	max := *maxParticipants
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}

	cap := Capacity{
		HasMaxLimit:     true,
		MaxParticipants: maxParticipants,
		IsAtMaxCapacity: count >= max,
		SpotsRemaining:  &remaining,
	}

	switch {
	case cap.IsAtMaxCapacity:
		cap.Signal = CapacityFull
	case float64(count) >= NearCapacityRatio*float64(max):
		cap.Signal = CapacityNear
	default:
		cap.Signal = CapacityUnder
	}
	return cap
}
