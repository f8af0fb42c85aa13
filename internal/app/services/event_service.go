package services

import (
	"context"
	"fmt"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/repositories"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
	"github.com/kaan/traintrack/internal/pkg/logger"
)

// EventService defines the interface for event scheduling operations.
// Attendee mutations live in AttendanceService.
type EventService interface {
	GetEvents(ctx context.Context, projectID int64) ([]*models.Event, error)
	GetEventByID(ctx context.Context, id int64) (*models.Event, error)
	CreateEvent(ctx context.Context, projectID int64, req *dto.CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*models.Event, error)
	ArchiveEvent(ctx context.Context, id int64) error
	DetachGroup(ctx context.Context, eventID, groupID int64) error
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo      *repositories.EventRepository
	projectRepo    *repositories.ProjectRepository
	curriculumRepo *repositories.CurriculumRepository
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo *repositories.EventRepository,
	projectRepo *repositories.ProjectRepository,
	curriculumRepo *repositories.CurriculumRepository,
) EventService {
	return &eventServiceImpl{
		eventRepo:      eventRepo,
		projectRepo:    projectRepo,
		curriculumRepo: curriculumRepo,
	}
}

// GetEvents retrieves the events of a project in start order
func (s *eventServiceImpl) GetEvents(ctx context.Context, projectID int64) ([]*models.Event, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	return s.eventRepo.GetByProject(ctx, projectID)
}

// GetEventByID retrieves an event by ID
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// CreateEvent schedules a session in a project
func (s *eventServiceImpl) CreateEvent(ctx context.Context, projectID int64, req *dto.CreateEventRequest) (*models.Event, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "event must end after it starts")
	}

	if req.CourseID != nil {
		if _, err := s.curriculumRepo.GetCourseByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}

	event := &models.Event{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CourseID:    req.CourseID,
		Location:    req.Location,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	logger.Info().Int64("event_id", event.ID).Int64("project_id", projectID).Msg("Event created")
	return event, nil
}

// UpdateEvent reschedules or retitles a session
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.IsArchived {
		return nil, apperrors.ErrEventArchived
	}

	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "event must end after it starts")
	}

	if req.CourseID != nil {
		if _, err := s.curriculumRepo.GetCourseByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}

	event.Title = req.Title
	event.Description = req.Description
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.CourseID = req.CourseID
	event.Location = req.Location

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// ArchiveEvent archives an event instead of deleting it, keeping its
// attendance history resolvable.
func (s *eventServiceImpl) ArchiveEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.Archive(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("event_id", id).Msg("Event archived")
	return nil
}

// DetachGroup removes a group attachment. Participants of the group who
// were promoted to direct attendees stay on the event.
func (s *eventServiceImpl) DetachGroup(ctx context.Context, eventID, groupID int64) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}

	return s.eventRepo.DetachGroup(ctx, eventID, groupID)
}
