package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/services"
	"github.com/kaan/traintrack/internal/middleware"
)

// CurriculumController handles content hierarchy operations
type CurriculumController struct {
	curriculumService services.CurriculumService
}

// NewCurriculumController creates a new CurriculumController
func NewCurriculumController(curriculumService services.CurriculumService) *CurriculumController {
	return &CurriculumController{curriculumService: curriculumService}
}

// GetAllCurricula lists all curricula
// @Summary List curricula
// @Tags curricula
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Curriculum} "Curricula retrieved"
// @Router /curricula [get]
func (c *CurriculumController) GetAllCurricula(ctx *gin.Context) {
	curricula, err := c.curriculumService.GetAllCurricula(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: curricula, Timestamp: time.Now()})
}

// GetCurriculumByID retrieves a curriculum with its content tree
// @Summary Get curriculum
// @Tags curricula
// @Produce json
// @Security BearerAuth
// @Param id path int true "Curriculum ID"
// @Success 200 {object} dto.APIResponse{data=models.Curriculum} "Curriculum retrieved"
// @Failure 404 {object} dto.ErrorResponse "Curriculum not found"
// @Router /curricula/{id} [get]
func (c *CurriculumController) GetCurriculumByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	curriculum, err := c.curriculumService.GetCurriculumByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: curriculum, Timestamp: time.Now()})
}

// CreateCurriculum creates a curriculum
// @Summary Create curriculum
// @Tags curricula
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCurriculumRequest true "Curriculum information"
// @Success 201 {object} dto.APIResponse{data=models.Curriculum} "Curriculum created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /curricula [post]
func (c *CurriculumController) CreateCurriculum(ctx *gin.Context) {
	var req dto.CreateCurriculumRequest
	if !bindJSON(ctx, &req) {
		return
	}

	curriculum, err := c.curriculumService.CreateCurriculum(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: curriculum, Timestamp: time.Now()})
}

// CreateCourse adds a course to a curriculum
// @Summary Create course
// @Description Adds a course. maxParticipants, when set, caps enrollment of every event taught from this course.
// @Tags curricula
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Curriculum ID"
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 404 {object} dto.ErrorResponse "Curriculum not found"
// @Router /curricula/{id}/courses [post]
func (c *CurriculumController) CreateCourse(ctx *gin.Context) {
	curriculumID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course, err := c.curriculumService.CreateCourse(ctx, curriculumID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// UpdateCourse updates a course
// @Summary Update course
// @Description Updates a course. Lowering maxParticipants below an event's current attendance blocks further additions without evicting anyone.
// @Tags curricula
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId} [put]
func (c *CurriculumController) UpdateCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course, err := c.curriculumService.UpdateCourse(ctx, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// CreateModule adds a module to a course
// @Summary Create module
// @Tags curricula
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.CreateModuleRequest true "Module information"
// @Success 201 {object} dto.APIResponse{data=models.Module} "Module created"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/modules [post]
func (c *CurriculumController) CreateModule(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.CreateModuleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	module, err := c.curriculumService.CreateModule(ctx, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: module, Timestamp: time.Now()})
}

// CreateActivity adds an activity to a module
// @Summary Create activity
// @Tags curricula
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param moduleId path int true "Module ID"
// @Param request body dto.CreateActivityRequest true "Activity information"
// @Success 201 {object} dto.APIResponse{data=models.Activity} "Activity created"
// @Router /modules/{moduleId}/activities [post]
func (c *CurriculumController) CreateActivity(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "moduleId")
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	activity, err := c.curriculumService.CreateActivity(ctx, moduleID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: activity, Timestamp: time.Now()})
}
