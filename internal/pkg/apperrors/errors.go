package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Project errors
var (
	ErrProjectNotFound = errors.New("project not found")
)

// Participant errors
var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantInactive = errors.New("participant is inactive")
)

// Group errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrGroupAlreadyExists  = errors.New("group with this name already exists in the project")
	ErrMemberAlreadyExists = errors.New("participant is already a member of the group")
)

// Event and attendance errors
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventArchived        = errors.New("event is archived")
	ErrAttendeeNotFound     = errors.New("event attendee not found")
	ErrAlreadyAttending     = errors.New("participant is already attending the event")
	ErrGroupAlreadyAttached = errors.New("group is already attached to the event")
	ErrCapacityExceeded     = errors.New("event capacity exceeded")
	ErrUpdateInFlight       = errors.New("another update for this participant is still in flight")
)

// Content errors
var (
	ErrCurriculumNotFound = errors.New("curriculum not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrChecklistNotFound  = errors.New("checklist not found")
)

// Daily focus errors
var (
	ErrFocusNotSet = errors.New("no focus set for this date")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewCapacityError builds the rejection returned when a batch add would
// overflow the course limit. Details carry the exact spots still open so
// the caller can adjust the selection; nothing is partially fulfilled.
func NewCapacityError(spotsRemaining, requested int) *CustomError {
	return NewCustomError(ErrCapacityExceeded, "not enough spots remaining for the requested additions").
		WithDetails(map[string]interface{}{
			"spotsRemaining": spotsRemaining,
			"requested":      requested,
		})
}
