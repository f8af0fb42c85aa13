package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/services"
	"github.com/kaan/traintrack/internal/middleware"
)

// ProjectController handles training program operations
type ProjectController struct {
	projectService services.ProjectService
	focusService   services.DailyFocusService
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService services.ProjectService, focusService services.DailyFocusService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		focusService:   focusService,
	}
}

// GetAllProjects lists all training programs
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Project} "Projects retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /projects [get]
func (c *ProjectController) GetAllProjects(ctx *gin.Context) {
	projects, err := c.projectService.GetAllProjects(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: projects, Timestamp: time.Now()})
}

// GetProjectByID retrieves a training program
// @Summary Get project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Project retrieved"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (c *ProjectController) GetProjectByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	project, err := c.projectService.GetProjectByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: project, Timestamp: time.Now()})
}

// CreateProject creates a training program
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project information"
// @Success 201 {object} dto.APIResponse{data=models.Project} "Project created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(ctx, &req) {
		return
	}

	project, err := c.projectService.CreateProject(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: project, Timestamp: time.Now()})
}

// UpdateProject updates a training program
// @Summary Update project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Project information"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Project updated"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !bindJSON(ctx, &req) {
		return
	}

	project, err := c.projectService.UpdateProject(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: project, Timestamp: time.Now()})
}

// DeleteProject removes a training program
// @Summary Delete project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Project deleted"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.projectService.DeleteProject(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Project deleted"},
		Timestamp: time.Now(),
	})
}

// GetAgenda returns the denormalized project agenda
// @Summary Get project agenda
// @Description Returns every event of the project with its attached groups, resolved attendee list and capacity, plus the group roster
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.AgendaResponse} "Agenda retrieved"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/agenda [get]
func (c *ProjectController) GetAgenda(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	agenda, err := c.projectService.GetAgenda(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: agenda, Timestamp: time.Now()})
}

// GetDailyFocus returns the focus note for a project day
// @Summary Get daily focus
// @Tags daily-focus
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.DailyFocusResponse} "Focus retrieved"
// @Failure 404 {object} dto.ErrorResponse "No focus set for this day"
// @Router /projects/{id}/focus/{date} [get]
func (c *ProjectController) GetDailyFocus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	focus, err := c.focusService.GetFocus(ctx, id, ctx.Param("date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: focus, Timestamp: time.Now()})
}

// SetDailyFocus stores the focus note for a project day
// @Summary Set daily focus
// @Tags daily-focus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param request body dto.DailyFocusRequest true "Focus text"
// @Success 200 {object} dto.APIResponse{data=dto.DailyFocusResponse} "Focus saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /projects/{id}/focus/{date} [put]
func (c *ProjectController) SetDailyFocus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DailyFocusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	focus, err := c.focusService.SetFocus(ctx, id, ctx.Param("date"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: focus, Timestamp: time.Now()})
}

// ClearDailyFocus removes the focus note for a project day
// @Summary Clear daily focus
// @Tags daily-focus
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Focus cleared"
// @Failure 404 {object} dto.ErrorResponse "No focus set for this day"
// @Router /projects/{id}/focus/{date} [delete]
func (c *ProjectController) ClearDailyFocus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.focusService.ClearFocus(ctx, id, ctx.Param("date")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Focus cleared"},
		Timestamp: time.Now(),
	})
}
