package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/services"
	"github.com/kaan/traintrack/internal/middleware"
)

// ChecklistController handles checklist operations
type ChecklistController struct {
	checklistService services.ChecklistService
}

// NewChecklistController creates a new ChecklistController
func NewChecklistController(checklistService services.ChecklistService) *ChecklistController {
	return &ChecklistController{checklistService: checklistService}
}

// GetChecklists lists the checklists of a project
// @Summary List checklists
// @Tags checklists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Checklist} "Checklists retrieved"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/checklists [get]
func (c *ChecklistController) GetChecklists(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	checklists, err := c.checklistService.GetChecklists(ctx, projectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: checklists, Timestamp: time.Now()})
}

// CreateChecklist creates a checklist with its items
// @Summary Create checklist
// @Tags checklists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.CreateChecklistRequest true "Checklist information"
// @Success 201 {object} dto.APIResponse{data=models.Checklist} "Checklist created"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/checklists [post]
func (c *ChecklistController) CreateChecklist(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateChecklistRequest
	if !bindJSON(ctx, &req) {
		return
	}

	checklist, err := c.checklistService.CreateChecklist(ctx, projectID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: checklist, Timestamp: time.Now()})
}

// DeleteChecklist removes a checklist
// @Summary Delete checklist
// @Tags checklists
// @Produce json
// @Security BearerAuth
// @Param checklistId path int true "Checklist ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Checklist deleted"
// @Failure 404 {object} dto.ErrorResponse "Checklist not found"
// @Router /checklists/{checklistId} [delete]
func (c *ChecklistController) DeleteChecklist(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "checklistId")
	if !ok {
		return
	}

	if err := c.checklistService.DeleteChecklist(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Checklist deleted"},
		Timestamp: time.Now(),
	})
}

// GetProgress returns per-participant completion over a checklist
// @Summary Get checklist progress
// @Tags checklists
// @Produce json
// @Security BearerAuth
// @Param checklistId path int true "Checklist ID"
// @Success 200 {object} dto.APIResponse{data=dto.ChecklistProgressResponse} "Progress retrieved"
// @Failure 404 {object} dto.ErrorResponse "Checklist not found"
// @Router /checklists/{checklistId}/progress [get]
func (c *ChecklistController) GetProgress(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "checklistId")
	if !ok {
		return
	}

	progress, err := c.checklistService.GetProgress(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: progress, Timestamp: time.Now()})
}

// SetProgress marks a checklist item done or not done for a participant
// @Summary Set checklist progress
// @Tags checklists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param checklistId path int true "Checklist ID"
// @Param request body dto.SetProgressRequest true "Progress change"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Progress recorded"
// @Failure 404 {object} dto.ErrorResponse "Checklist, item or participant not found"
// @Router /checklists/{checklistId}/progress [put]
func (c *ChecklistController) SetProgress(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "checklistId")
	if !ok {
		return
	}

	var req dto.SetProgressRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.checklistService.SetProgress(ctx, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Progress recorded"},
		Timestamp: time.Now(),
	})
}
