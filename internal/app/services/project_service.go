package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/repositories"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
	"github.com/kaan/traintrack/internal/pkg/helpers"
	"github.com/kaan/traintrack/internal/pkg/logger"
)

// ProjectService defines the interface for training program operations
type ProjectService interface {
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id int64, req *dto.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
	GetAgenda(ctx context.Context, id int64) (*dto.AgendaResponse, error)
}

// projectServiceImpl implements ProjectService
type projectServiceImpl struct {
	projectRepo       *repositories.ProjectRepository
	eventRepo         *repositories.EventRepository
	groupRepo         *repositories.GroupRepository
	attendanceService AttendanceService
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo *repositories.ProjectRepository,
	eventRepo *repositories.EventRepository,
	groupRepo *repositories.GroupRepository,
	attendanceService AttendanceService,
) ProjectService {
	return &projectServiceImpl{
		projectRepo:       projectRepo,
		eventRepo:         eventRepo,
		groupRepo:         groupRepo,
		attendanceService: attendanceService,
	}
}

// GetAllProjects retrieves all training programs
func (s *projectServiceImpl) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return s.projectRepo.GetAll(ctx)
}

// GetProjectByID retrieves a training program by ID
func (s *projectServiceImpl) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// CreateProject creates a new training program
func (s *projectServiceImpl) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*models.Project, error) {
	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "end date must not precede start date")
	}

	project := &models.Project{
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    startDate,
		EndDate:      endDate,
		CurriculumID: req.CurriculumID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}

	logger.Info().Int64("project_id", project.ID).Str("name", project.Name).Msg("Project created")
	return project, nil
}

// UpdateProject updates a training program
func (s *projectServiceImpl) UpdateProject(ctx context.Context, id int64, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "end date must not precede start date")
	}

	project.Name = req.Name
	project.Description = req.Description
	project.StartDate = startDate
	project.EndDate = endDate
	project.CurriculumID = req.CurriculumID

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes a training program and everything owned by it
func (s *projectServiceImpl) DeleteProject(ctx context.Context, id int64) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("project_id", id).Msg("Project deleted")
	return nil
}

// GetAgenda builds the denormalized project agenda: every event with its
// attached groups and merged attendee list, plus the project's group
// roster. One payload drives the whole calendar view.
func (s *projectServiceImpl) GetAgenda(ctx context.Context, id int64) (*dto.AgendaResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.GetByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading project events: %w", err)
	}

	groups, err := s.groupRepo.GetByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading project groups: %w", err)
	}

	agenda := &dto.AgendaResponse{
		ProjectID: project.ID,
		Events:    make([]*dto.AgendaEvent, 0, len(events)),
		Groups:    groups,
	}

	for _, event := range events {
		attendees, err := s.attendanceService.ListAttendees(ctx, event.ID, "")
		if err != nil {
			return nil, err
		}
		attached, err := s.eventRepo.GetAttachedGroups(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		agenda.Events = append(agenda.Events, &dto.AgendaEvent{
			Event:     event,
			Groups:    attached,
			Attendees: attendees.Attendees,
			Capacity:  attendees.Capacity,
		})
	}

	return agenda, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(helpers.ISODateLayout, *value)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", *value))
	}
	return &parsed, nil
}
