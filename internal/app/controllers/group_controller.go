package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/services"
	"github.com/kaan/traintrack/internal/middleware"
)

// GroupController handles participant group operations
type GroupController struct {
	groupService      services.GroupService
	attendanceService services.AttendanceService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService, attendanceService services.AttendanceService) *GroupController {
	return &GroupController{
		groupService:      groupService,
		attendanceService: attendanceService,
	}
}

// GetGroups lists the groups of a project
// @Summary List groups
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Group} "Groups retrieved"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/groups [get]
func (c *GroupController) GetGroups(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	groups, err := c.groupService.GetGroups(ctx, projectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: groups, Timestamp: time.Now()})
}

// GetGroupByID retrieves a group with its members
// @Summary Get group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=models.Group} "Group retrieved"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{groupId} [get]
func (c *GroupController) GetGroupByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	group, err := c.groupService.GetGroupByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: group, Timestamp: time.Now()})
}

// CreateGroup creates a group inside a project
// @Summary Create group
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.CreateGroupRequest true "Group information"
// @Success 201 {object} dto.APIResponse{data=models.Group} "Group created"
// @Failure 409 {object} dto.ErrorResponse "Group name already taken in this project"
// @Router /projects/{id}/groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if !bindJSON(ctx, &req) {
		return
	}

	group, err := c.groupService.CreateGroup(ctx, projectID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: group, Timestamp: time.Now()})
}

// UpdateGroup renames or recolors a group
// @Summary Update group
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Group information"
// @Success 200 {object} dto.APIResponse{data=models.Group} "Group updated"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{groupId} [put]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if !bindJSON(ctx, &req) {
		return
	}

	group, err := c.groupService.UpdateGroup(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: group, Timestamp: time.Now()})
}

// DeleteGroup removes a group
// @Summary Delete group
// @Description Deletes a group. Members stay in the project; promoted direct attendance rows are kept.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Group deleted"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{groupId} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	if err := c.groupService.DeleteGroup(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Group deleted"},
		Timestamp: time.Now(),
	})
}

// AddMember adds a participant to a group
// @Summary Add group member
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Param participantId path int true "Participant ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Member added"
// @Failure 409 {object} dto.ErrorResponse "Already a member"
// @Router /groups/{groupId}/members/{participantId} [post]
func (c *GroupController) AddMember(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}
	participantID, ok := parseIDParam(ctx, "participantId")
	if !ok {
		return
	}

	if err := c.groupService.AddMember(ctx, groupID, participantID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Member added"},
		Timestamp: time.Now(),
	})
}

// RemoveMember removes a participant from a group
// @Summary Remove group member
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Param participantId path int true "Participant ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Member removed"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Router /groups/{groupId}/members/{participantId} [delete]
func (c *GroupController) RemoveMember(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}
	participantID, ok := parseIDParam(ctx, "participantId")
	if !ok {
		return
	}

	if err := c.groupService.RemoveMember(ctx, groupID, participantID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Member removed"},
		Timestamp: time.Now(),
	})
}

// MoveMember moves a participant between groups of a project
// @Summary Move participant between groups
// @Description Moves a participant from one group to another in a single step. A null fromGroupId means the participant had no group; a null toGroupId removes them from all groups of the project. Direct attendance rows are untouched.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.MoveGroupMemberRequest true "Move description"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Member moved"
// @Failure 404 {object} dto.ErrorResponse "Group not found in this project"
// @Failure 409 {object} dto.ErrorResponse "Another update for this participant is in flight"
// @Router /projects/{id}/groups/move-member [post]
func (c *GroupController) MoveMember(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MoveGroupMemberRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.attendanceService.MoveGroupMember(ctx, projectID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Member moved"},
		Timestamp: time.Now(),
	})
}
