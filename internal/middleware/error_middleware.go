package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
	"github.com/kaan/traintrack/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers call
// this instead of mapping sentinels themselves so every endpoint reports
// the same error shape for the same failure.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	details := interface{}(nil)
	message := ""
	if errors.As(err, &custom) {
		message = custom.Message
		if custom.Details != nil {
			details = custom.Details
		}
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		detail := dto.NewErrorDetail(code, message)
		if details != nil {
			detail = detail.WithDetails(details)
		}
		c.JSON(status, dto.NewErrorResponse(detail))
	}

	switch {
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		respond(409, dto.ErrorCodeCapacityExceeded, "Event capacity exceeded")
	case errors.Is(err, apperrors.ErrUpdateInFlight):
		respond(409, dto.ErrorCodeUpdateInFlight, "Another update for this participant is in flight")
	case errors.Is(err, apperrors.ErrAlreadyAttending):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "Participant is already attending the event")
	case errors.Is(err, apperrors.ErrGroupAlreadyAttached):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "Group is already attached to the event")
	case errors.Is(err, apperrors.ErrGroupAlreadyExists):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "A group with this name already exists in the project")
	case errors.Is(err, apperrors.ErrMemberAlreadyExists):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "Participant is already a member of the group")
	case errors.Is(err, apperrors.ErrEventArchived):
		respond(409, dto.ErrorCodeConflict, "Event is archived")
	case errors.Is(err, apperrors.ErrParticipantInactive):
		respond(409, dto.ErrorCodeConflict, "Participant is inactive")

	case errors.Is(err, apperrors.ErrProjectNotFound),
		errors.Is(err, apperrors.ErrParticipantNotFound),
		errors.Is(err, apperrors.ErrGroupNotFound),
		errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrAttendeeNotFound),
		errors.Is(err, apperrors.ErrCurriculumNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrChecklistNotFound),
		errors.Is(err, apperrors.ErrFocusNotSet),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(404, dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(401, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(401, dto.ErrorCodeInvalidCredentials, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(401, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat):
		respond(401, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(401, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(403, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(400, dto.ErrorCodeValidationFailed, "Validation failed")

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
