package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaan/traintrack/internal/app/controllers"
	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	projectController *controllers.ProjectController,
	participantController *controllers.ParticipantController,
	groupController *controllers.GroupController,
	eventController *controllers.EventController,
	curriculumController *controllers.CurriculumController,
	checklistController *controllers.ChecklistController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		projects := authenticated.Group("/projects")
		{
			projects.GET("", projectController.GetAllProjects)
			projects.POST("", projectController.CreateProject)
			projects.GET("/:id", projectController.GetProjectByID)
			projects.PUT("/:id", projectController.UpdateProject)
			projects.GET("/:id/agenda", projectController.GetAgenda)

			// Daily focus, keyed by project and day
			projects.GET("/:id/focus/:date", projectController.GetDailyFocus)
			projects.PUT("/:id/focus/:date", projectController.SetDailyFocus)
			projects.DELETE("/:id/focus/:date", projectController.ClearDailyFocus)

			// Project-scoped collections
			projects.GET("/:id/participants", participantController.GetParticipants)
			projects.POST("/:id/participants", participantController.CreateParticipant)
			projects.GET("/:id/groups", groupController.GetGroups)
			projects.POST("/:id/groups", groupController.CreateGroup)
			projects.POST("/:id/groups/move-member", groupController.MoveMember)
			projects.GET("/:id/events", eventController.GetEvents)
			projects.POST("/:id/events", eventController.CreateEvent)
			projects.GET("/:id/checklists", checklistController.GetChecklists)
			projects.POST("/:id/checklists", checklistController.CreateChecklist)

			// Deleting a whole program is admin-only
			projectsAdmin := projects.Group("")
			projectsAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				projectsAdmin.DELETE("/:id", projectController.DeleteProject)
			}
		}

		participants := authenticated.Group("/participants")
		{
			participants.GET("/:participantId", participantController.GetParticipantByID)
			participants.PUT("/:participantId", participantController.UpdateParticipant)
			participants.DELETE("/:participantId", participantController.RemoveParticipant)
		}

		groups := authenticated.Group("/groups")
		{
			groups.GET("/:groupId", groupController.GetGroupByID)
			groups.PUT("/:groupId", groupController.UpdateGroup)
			groups.DELETE("/:groupId", groupController.DeleteGroup)
			groups.POST("/:groupId/members/:participantId", groupController.AddMember)
			groups.DELETE("/:groupId/members/:participantId", groupController.RemoveMember)
		}

		events := authenticated.Group("/events")
		{
			events.GET("/:eventId", eventController.GetEventByID)
			events.PUT("/:eventId", eventController.UpdateEvent)
			events.DELETE("/:eventId", eventController.ArchiveEvent)

			// Attendee list and mutations
			events.GET("/:eventId/attendees", eventController.GetAttendees)
			events.POST("/:eventId/attendees", eventController.BatchAddAttendees)
			events.DELETE("/:eventId/attendees/:participantId", eventController.RemoveAttendee)
			events.PUT("/:eventId/attendees/:participantId/status", eventController.UpdateAttendeeStatus)
			events.POST("/:eventId/attendees/:participantId/move", eventController.MoveAttendee)
			events.DELETE("/:eventId/groups/:groupId", eventController.DetachGroup)
		}

		curricula := authenticated.Group("/curricula")
		{
			curricula.GET("", curriculumController.GetAllCurricula)
			curricula.GET("/:id", curriculumController.GetCurriculumByID)

			// Content editing is admin-only
			curriculaAdmin := curricula.Group("")
			curriculaAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				curriculaAdmin.POST("", curriculumController.CreateCurriculum)
				curriculaAdmin.POST("/:id/courses", curriculumController.CreateCourse)
			}
		}

		courses := authenticated.Group("/courses")
		courses.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			courses.PUT("/:courseId", curriculumController.UpdateCourse)
			courses.POST("/:courseId/modules", curriculumController.CreateModule)
		}

		modules := authenticated.Group("/modules")
		modules.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			modules.POST("/:moduleId/activities", curriculumController.CreateActivity)
		}

		checklists := authenticated.Group("/checklists")
		{
			checklists.DELETE("/:checklistId", checklistController.DeleteChecklist)
			checklists.GET("/:checklistId/progress", checklistController.GetProgress)
			checklists.PUT("/:checklistId/progress", checklistController.SetProgress)
		}
	}
}
