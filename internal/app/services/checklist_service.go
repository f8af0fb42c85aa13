package services

import (
	"context"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/repositories"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
)

// ChecklistService defines the interface for checklist operations
type ChecklistService interface {
	GetChecklists(ctx context.Context, projectID int64) ([]*models.Checklist, error)
	CreateChecklist(ctx context.Context, projectID int64, req *dto.CreateChecklistRequest) (*models.Checklist, error)
	DeleteChecklist(ctx context.Context, id int64) error
	GetProgress(ctx context.Context, checklistID int64) (*dto.ChecklistProgressResponse, error)
	SetProgress(ctx context.Context, checklistID int64, req *dto.SetProgressRequest) error
}

// checklistServiceImpl implements ChecklistService
type checklistServiceImpl struct {
	checklistRepo   *repositories.ChecklistRepository
	projectRepo     *repositories.ProjectRepository
	participantRepo *repositories.ParticipantRepository
}

// NewChecklistService creates a new ChecklistService
func NewChecklistService(
	checklistRepo *repositories.ChecklistRepository,
	projectRepo *repositories.ProjectRepository,
	participantRepo *repositories.ParticipantRepository,
) ChecklistService {
	return &checklistServiceImpl{
		checklistRepo:   checklistRepo,
		projectRepo:     projectRepo,
		participantRepo: participantRepo,
	}
}

// GetChecklists retrieves the checklists of a project with their items
func (s *checklistServiceImpl) GetChecklists(ctx context.Context, projectID int64) ([]*models.Checklist, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	return s.checklistRepo.GetByProject(ctx, projectID)
}

// CreateChecklist creates a checklist with its items
func (s *checklistServiceImpl) CreateChecklist(ctx context.Context, projectID int64, req *dto.CreateChecklistRequest) (*models.Checklist, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	checklist := &models.Checklist{
		ProjectID: projectID,
		Name:      req.Name,
	}
	for i, label := range req.Items {
		checklist.Items = append(checklist.Items, &models.ChecklistItem{
			Label:    label,
			Position: i,
		})
	}

	if err := s.checklistRepo.Create(ctx, checklist); err != nil {
		return nil, err
	}

	return checklist, nil
}

// DeleteChecklist removes a checklist and its progress rows
func (s *checklistServiceImpl) DeleteChecklist(ctx context.Context, id int64) error {
	return s.checklistRepo.Delete(ctx, id)
}

// GetProgress aggregates per-participant completion over a checklist
func (s *checklistServiceImpl) GetProgress(ctx context.Context, checklistID int64) (*dto.ChecklistProgressResponse, error) {
	checklist, err := s.checklistRepo.GetByID(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	rows, err := s.checklistRepo.GetProgress(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	byParticipant := make(map[int64]*dto.ParticipantProgress)
	response := &dto.ChecklistProgressResponse{ChecklistID: checklistID}
	for _, row := range rows {
		progress, ok := byParticipant[row.ParticipantID]
		if !ok {
			progress = &dto.ParticipantProgress{
				ParticipantID: row.ParticipantID,
				TotalItems:    len(checklist.Items),
			}
			byParticipant[row.ParticipantID] = progress
			response.Participants = append(response.Participants, progress)
		}
		progress.DoneItemIDs = append(progress.DoneItemIDs, row.ItemID)
		progress.DoneCount++
	}

	return response, nil
}

// SetProgress marks a checklist item done or not done for a participant
func (s *checklistServiceImpl) SetProgress(ctx context.Context, checklistID int64, req *dto.SetProgressRequest) error {
	checklist, err := s.checklistRepo.GetByID(ctx, checklistID)
	if err != nil {
		return err
	}

	found := false
	for _, item := range checklist.Items {
		if item.ID == req.ItemID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.ErrChecklistNotFound
	}

	participant, err := s.participantRepo.GetByID(ctx, req.ParticipantID)
	if err != nil {
		return err
	}
	if participant.ProjectID != checklist.ProjectID {
		return apperrors.ErrParticipantNotFound
	}

	if req.Done {
		return s.checklistRepo.SetItemDone(ctx, req.ItemID, req.ParticipantID)
	}
	return s.checklistRepo.ClearItemDone(ctx, req.ItemID, req.ParticipantID)
}
