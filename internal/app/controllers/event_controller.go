package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/services"
	"github.com/kaan/traintrack/internal/middleware"
)

// EventController handles event scheduling and attendee operations
type EventController struct {
	eventService      services.EventService
	attendanceService services.AttendanceService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, attendanceService services.AttendanceService) *EventController {
	return &EventController{
		eventService:      eventService,
		attendanceService: attendanceService,
	}
}

// GetEvents lists the events of a project
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events retrieved"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/events [get]
func (c *EventController) GetEvents(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	events, err := c.eventService.GetEvents(ctx, projectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: events, Timestamp: time.Now()})
}

// GetEventByID retrieves an event
// @Summary Get event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{eventId} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	event, err := c.eventService.GetEventByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: event, Timestamp: time.Now()})
}

// CreateEvent schedules a session
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /projects/{id}/events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.CreateEvent(ctx, projectID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: event, Timestamp: time.Now()})
}

// UpdateEvent reschedules or retitles a session
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event information"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event updated"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event is archived"
// @Router /events/{eventId} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.UpdateEvent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: event, Timestamp: time.Now()})
}

// ArchiveEvent archives an event
// @Summary Archive event
// @Description Archives an event. Attendance history stays queryable; attendee mutations are no longer accepted.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event archived"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{eventId} [delete]
func (c *EventController) ArchiveEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	if err := c.eventService.ArchiveEvent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Event archived"},
		Timestamp: time.Now(),
	})
}

// GetAttendees returns the merged attendee list of an event
// @Summary List event attendees
// @Description Returns the deduplicated attendee list merged from direct rows and attached groups, sorted by name, with the capacity block. An optional free-text query filters by name, accent-insensitively.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param q query string false "Name filter"
// @Success 200 {object} dto.APIResponse{data=dto.AttendeeListResponse} "Attendees retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{eventId}/attendees [get]
func (c *EventController) GetAttendees(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	attendees, err := c.attendanceService.ListAttendees(ctx, eventID, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: attendees, Timestamp: time.Now()})
}

// BatchAddAttendees adds participants and groups to an event
// @Summary Batch add attendees
// @Description Adds participants and attaches groups in one request. Capacity is checked once for the whole batch; if the projected additions do not fit, nothing is applied. Past that gate, items are processed sequentially and failures are itemized in the report without stopping the rest.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body dto.BatchAddRequest true "Participants and groups to add"
// @Success 200 {object} dto.APIResponse{data=dto.BatchAddReport} "Batch processed"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Capacity exceeded, nothing applied"
// @Router /events/{eventId}/attendees [post]
func (c *EventController) BatchAddAttendees(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	var req dto.BatchAddRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if len(req.ParticipantIDs) == 0 && len(req.GroupIDs) == 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Nothing to add").
			WithDetails("participantIds or groupIds must be non-empty")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	report, err := c.attendanceService.BatchAdd(ctx, eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: report, Timestamp: time.Now()})
}

// RemoveAttendee removes a direct attendee from an event
// @Summary Remove attendee
// @Description Removes a participant's direct row. Group-derived membership is unaffected; detach the group to remove those.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param participantId path int true "Participant ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Attendee removed"
// @Failure 404 {object} dto.ErrorResponse "Attendee not found"
// @Failure 409 {object} dto.ErrorResponse "Another update for this participant is in flight"
// @Router /events/{eventId}/attendees/{participantId} [delete]
func (c *EventController) RemoveAttendee(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}
	participantID, ok := parseIDParam(ctx, "participantId")
	if !ok {
		return
	}

	if err := c.attendanceService.RemoveAttendee(ctx, eventID, participantID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Attendee removed"},
		Timestamp: time.Now(),
	})
}

// UpdateAttendeeStatus records an attendance status
// @Summary Update attendance status
// @Description Sets the attendance status of a participant for an event. A participant attending only through a group is promoted to a direct attendee carrying the status.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param participantId path int true "Participant ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.EventAttendee} "Status recorded"
// @Failure 400 {object} dto.ErrorResponse "Unknown status value"
// @Failure 409 {object} dto.ErrorResponse "Another update for this participant is in flight"
// @Router /events/{eventId}/attendees/{participantId}/status [put]
func (c *EventController) UpdateAttendeeStatus(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}
	participantID, ok := parseIDParam(ctx, "participantId")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	attendee, err := c.attendanceService.UpdateStatus(ctx, eventID, participantID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: attendee, Timestamp: time.Now()})
}

// MoveAttendee transfers a participant to another event
// @Summary Move attendee
// @Description Moves a participant's direct membership to another event in one atomic step. The recorded status travels with them.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Source event ID"
// @Param participantId path int true "Participant ID"
// @Param request body dto.MoveParticipantRequest true "Target event"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Attendee moved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Target at capacity, or another update in flight"
// @Router /events/{eventId}/attendees/{participantId}/move [post]
func (c *EventController) MoveAttendee(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}
	participantID, ok := parseIDParam(ctx, "participantId")
	if !ok {
		return
	}

	var req dto.MoveParticipantRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.attendanceService.MoveAttendee(ctx, eventID, participantID, req.TargetEventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Attendee moved"},
		Timestamp: time.Now(),
	})
}

// DetachGroup detaches a group from an event
// @Summary Detach group
// @Description Detaches a group from an event. Members promoted to direct attendees stay on the event.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Group detached"
// @Failure 404 {object} dto.ErrorResponse "Attachment not found"
// @Router /events/{eventId}/groups/{groupId} [delete]
func (c *EventController) DetachGroup(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	if err := c.eventService.DetachGroup(ctx, eventID, groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Group detached"},
		Timestamp: time.Now(),
	})
}
