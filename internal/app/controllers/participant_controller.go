package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/services"
	"github.com/kaan/traintrack/internal/middleware"
	"github.com/kaan/traintrack/internal/pkg/helpers"
)

// ParticipantController handles roster operations
type ParticipantController struct {
	participantService services.ParticipantService
}

// NewParticipantController creates a new ParticipantController
func NewParticipantController(participantService services.ParticipantService) *ParticipantController {
	return &ParticipantController{participantService: participantService}
}

// GetParticipants lists the roster of a project
// @Summary List participants
// @Description Lists one page of a project's participants. Inactive participants are excluded unless includeInactive=true.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param includeInactive query bool false "Include soft-removed participants"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size (max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Participant}} "Participants retrieved"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/participants [get]
func (c *ParticipantController) GetParticipants(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	includeInactive := ctx.Query("includeInactive") == "true"
	page, size := helpers.ParsePaginationParams(ctx)

	participants, pagination, err := c.participantService.GetParticipants(ctx, projectID, includeInactive, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: participants, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// GetParticipantByID retrieves a participant
// @Summary Get participant
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param participantId path int true "Participant ID"
// @Success 200 {object} dto.APIResponse{data=models.Participant} "Participant retrieved"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Router /participants/{participantId} [get]
func (c *ParticipantController) GetParticipantByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "participantId")
	if !ok {
		return
	}

	participant, err := c.participantService.GetParticipantByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: participant, Timestamp: time.Now()})
}

// CreateParticipant enrolls a person into a project
// @Summary Create participant
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.CreateParticipantRequest true "Participant information"
// @Success 201 {object} dto.APIResponse{data=models.Participant} "Participant created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/participants [post]
func (c *ParticipantController) CreateParticipant(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateParticipantRequest
	if !bindJSON(ctx, &req) {
		return
	}

	participant, err := c.participantService.CreateParticipant(ctx, projectID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: participant, Timestamp: time.Now()})
}

// UpdateParticipant updates a participant's contact fields
// @Summary Update participant
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participantId path int true "Participant ID"
// @Param request body dto.UpdateParticipantRequest true "Participant information"
// @Success 200 {object} dto.APIResponse{data=models.Participant} "Participant updated"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Router /participants/{participantId} [put]
func (c *ParticipantController) UpdateParticipant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "participantId")
	if !ok {
		return
	}

	var req dto.UpdateParticipantRequest
	if !bindJSON(ctx, &req) {
		return
	}

	participant, err := c.participantService.UpdateParticipant(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: participant, Timestamp: time.Now()})
}

// RemoveParticipant soft-removes a participant
// @Summary Remove participant
// @Description Marks a participant inactive. Attendance history and checklist progress are kept.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param participantId path int true "Participant ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Participant removed"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Router /participants/{participantId} [delete]
func (c *ParticipantController) RemoveParticipant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "participantId")
	if !ok {
		return
	}

	if err := c.participantService.RemoveParticipant(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Participant removed"},
		Timestamp: time.Now(),
	})
}
