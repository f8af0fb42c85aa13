package services

import (
	"context"
	"fmt"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/repositories"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
)

// GroupService defines the interface for participant group operations
type GroupService interface {
	GetGroups(ctx context.Context, projectID int64) ([]*models.Group, error)
	GetGroupByID(ctx context.Context, id int64) (*models.Group, error)
	CreateGroup(ctx context.Context, projectID int64, req *dto.CreateGroupRequest) (*models.Group, error)
	UpdateGroup(ctx context.Context, id int64, req *dto.UpdateGroupRequest) (*models.Group, error)
	DeleteGroup(ctx context.Context, id int64) error
	AddMember(ctx context.Context, groupID, participantID int64) error
	RemoveMember(ctx context.Context, groupID, participantID int64) error
}

// groupServiceImpl implements GroupService
type groupServiceImpl struct {
	groupRepo       *repositories.GroupRepository
	projectRepo     *repositories.ProjectRepository
	participantRepo *repositories.ParticipantRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(
	groupRepo *repositories.GroupRepository,
	projectRepo *repositories.ProjectRepository,
	participantRepo *repositories.ParticipantRepository,
) GroupService {
	return &groupServiceImpl{
		groupRepo:       groupRepo,
		projectRepo:     projectRepo,
		participantRepo: participantRepo,
	}
}

// GetGroups retrieves the groups of a project with their members
func (s *groupServiceImpl) GetGroups(ctx context.Context, projectID int64) ([]*models.Group, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	return s.groupRepo.GetByProject(ctx, projectID)
}

// GetGroupByID retrieves a group with its members
func (s *groupServiceImpl) GetGroupByID(ctx context.Context, id int64) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.groupRepo.GetMembers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading group members: %w", err)
	}
	group.Members = members

	return group, nil
}

// CreateGroup creates a named group inside a project
func (s *groupServiceImpl) CreateGroup(ctx context.Context, projectID int64, req *dto.CreateGroupRequest) (*models.Group, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	group := &models.Group{
		ProjectID: projectID,
		Name:      req.Name,
		Color:     req.Color,
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// UpdateGroup renames or recolors a group
func (s *groupServiceImpl) UpdateGroup(ctx context.Context, id int64, req *dto.UpdateGroupRequest) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group.Name = req.Name
	group.Color = req.Color

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// DeleteGroup removes a group. Members survive as ungrouped participants,
// and direct attendance rows earlier promoted from this group are kept.
func (s *groupServiceImpl) DeleteGroup(ctx context.Context, id int64) error {
	return s.groupRepo.Delete(ctx, id)
}

// AddMember adds an active participant to a group
func (s *groupServiceImpl) AddMember(ctx context.Context, groupID, participantID int64) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	if participant.ProjectID != group.ProjectID {
		return apperrors.ErrParticipantNotFound
	}
	if !participant.IsActive {
		return apperrors.ErrParticipantInactive
	}

	return s.groupRepo.AddMember(ctx, groupID, participantID)
}

// RemoveMember removes a participant from a group
func (s *groupServiceImpl) RemoveMember(ctx context.Context, groupID, participantID int64) error {
	return s.groupRepo.RemoveMember(ctx, groupID, participantID)
}
