package services

import (
	"context"
	"fmt"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/repositories"
	"github.com/kaan/traintrack/internal/pkg/logger"
)

// ParticipantService defines the interface for roster operations
type ParticipantService interface {
	GetParticipants(ctx context.Context, projectID int64, includeInactive bool, page, size int) ([]*models.Participant, dto.PaginationInfo, error)
	GetParticipantByID(ctx context.Context, id int64) (*models.Participant, error)
	CreateParticipant(ctx context.Context, projectID int64, req *dto.CreateParticipantRequest) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, id int64, req *dto.UpdateParticipantRequest) (*models.Participant, error)
	RemoveParticipant(ctx context.Context, id int64) error
}

// participantServiceImpl implements ParticipantService
type participantServiceImpl struct {
	participantRepo *repositories.ParticipantRepository
	projectRepo     *repositories.ProjectRepository
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(
	participantRepo *repositories.ParticipantRepository,
	projectRepo *repositories.ProjectRepository,
) ParticipantService {
	return &participantServiceImpl{
		participantRepo: participantRepo,
		projectRepo:     projectRepo,
	}
}

// GetParticipants retrieves one page of a project's roster
func (s *participantServiceImpl) GetParticipants(ctx context.Context, projectID int64, includeInactive bool, page, size int) ([]*models.Participant, dto.PaginationInfo, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return s.participantRepo.GetByProject(ctx, projectID, !includeInactive, page, size)
}

// GetParticipantByID retrieves a participant by ID
func (s *participantServiceImpl) GetParticipantByID(ctx context.Context, id int64) (*models.Participant, error) {
	return s.participantRepo.GetByID(ctx, id)
}

// CreateParticipant enrolls a person into a project
func (s *participantServiceImpl) CreateParticipant(ctx context.Context, projectID int64, req *dto.CreateParticipantRequest) (*models.Participant, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	participant := &models.Participant{
		ProjectID: projectID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		IsActive:  true,
	}

	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("error creating participant: %w", err)
	}

	return participant, nil
}

// UpdateParticipant updates a participant's contact fields
func (s *participantServiceImpl) UpdateParticipant(ctx context.Context, id int64, req *dto.UpdateParticipantRequest) (*models.Participant, error) {
	participant, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	participant.FirstName = req.FirstName
	participant.LastName = req.LastName
	participant.Email = req.Email
	participant.Phone = req.Phone
	participant.Role = req.Role

	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return nil, err
	}

	return participant, nil
}

// RemoveParticipant marks a participant inactive. The row stays so direct
// attendance records and checklist progress keep resolving.
func (s *participantServiceImpl) RemoveParticipant(ctx context.Context, id int64) error {
	if err := s.participantRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("participant_id", id).Msg("Participant deactivated")
	return nil
}
