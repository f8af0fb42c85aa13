package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
	"github.com/kaan/traintrack/internal/pkg/cache"
	"github.com/kaan/traintrack/internal/pkg/helpers"
)

// DailyFocusStore is the persistence surface for per-day focus notes.
// Implemented by repositories.DailyFocusRepository.
type DailyFocusStore interface {
	Get(ctx context.Context, projectID int64, date string) (*models.DailyFocus, error)
	Upsert(ctx context.Context, focus *models.DailyFocus) error
	Delete(ctx context.Context, projectID int64, date string) error
}

// ProjectStore resolves project existence. Implemented by
// repositories.ProjectRepository.
type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*models.Project, error)
}

// DailyFocusService defines the interface for daily focus operations.
// Reads go through a bounded in-process cache keyed by (project, date);
// writes go through to the database and update the cache in place.
type DailyFocusService interface {
	GetFocus(ctx context.Context, projectID int64, date string) (*dto.DailyFocusResponse, error)
	SetFocus(ctx context.Context, projectID int64, date string, req *dto.DailyFocusRequest) (*dto.DailyFocusResponse, error)
	ClearFocus(ctx context.Context, projectID int64, date string) error
}

// dailyFocusServiceImpl implements DailyFocusService
type dailyFocusServiceImpl struct {
	focusStore  DailyFocusStore
	projectRepo ProjectStore
	cache       *cache.Bounded
}

// NewDailyFocusService creates a new DailyFocusService
func NewDailyFocusService(focusStore DailyFocusStore, projectRepo ProjectStore) DailyFocusService {
	return &dailyFocusServiceImpl{
		focusStore:  focusStore,
		projectRepo: projectRepo,
		cache:       cache.NewBounded(cache.DefaultMaxEntries, cache.DefaultEvictCount),
	}
}

func focusCacheKey(projectID int64, date string) string {
	return fmt.Sprintf("%d:%s", projectID, date)
}

// GetFocus returns the focus note for a project day
func (s *dailyFocusServiceImpl) GetFocus(ctx context.Context, projectID int64, date string) (*dto.DailyFocusResponse, error) {
	date, err := helpers.ParseISODate(date)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	}

	if focus, ok := s.cache.Get(focusCacheKey(projectID, date)); ok {
		return &dto.DailyFocusResponse{ProjectID: projectID, Date: date, Focus: focus}, nil
	}

	stored, err := s.focusStore.Get(ctx, projectID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrFocusNotSet) {
			// Verify the project before reporting an empty day, so a
			// bogus project id is a 404 rather than "no focus".
			if _, perr := s.projectRepo.GetByID(ctx, projectID); perr != nil {
				return nil, perr
			}
		}
		return nil, err
	}

	s.cache.Set(focusCacheKey(projectID, date), stored.Focus)
	return &dto.DailyFocusResponse{ProjectID: projectID, Date: date, Focus: stored.Focus}, nil
}

// SetFocus stores the focus note for a project day, replacing any earlier
// text. The cache entry is updated in place so readers never see the old
// text after the write returns.
func (s *dailyFocusServiceImpl) SetFocus(ctx context.Context, projectID int64, date string, req *dto.DailyFocusRequest) (*dto.DailyFocusResponse, error) {
	date, err := helpers.ParseISODate(date)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	}

	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	focus := &models.DailyFocus{
		ProjectID: projectID,
		FocusDate: date,
		Focus:     req.Focus,
	}
	if err := s.focusStore.Upsert(ctx, focus); err != nil {
		return nil, err
	}

	s.cache.Set(focusCacheKey(projectID, date), focus.Focus)
	return &dto.DailyFocusResponse{ProjectID: projectID, Date: date, Focus: focus.Focus}, nil
}

// ClearFocus removes the focus note for a project day
func (s *dailyFocusServiceImpl) ClearFocus(ctx context.Context, projectID int64, date string) error {
	date, err := helpers.ParseISODate(date)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	}

	if err := s.focusStore.Delete(ctx, projectID, date); err != nil {
		return err
	}

	s.cache.Delete(focusCacheKey(projectID, date))
	return nil
}
