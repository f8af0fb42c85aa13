package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
)

type fakeFocusStore struct {
	rows map[string]*models.DailyFocus
	gets int
}

func focusRowKey(projectID int64, date string) string {
	return focusCacheKey(projectID, date)
}

func newFakeFocusStore() *fakeFocusStore {
	return &fakeFocusStore{rows: make(map[string]*models.DailyFocus)}
}

func (f *fakeFocusStore) Get(_ context.Context, projectID int64, date string) (*models.DailyFocus, error) {
	f.gets++
	row, ok := f.rows[focusRowKey(projectID, date)]
	if !ok {
		return nil, apperrors.ErrFocusNotSet
	}
	return row, nil
}

func (f *fakeFocusStore) Upsert(_ context.Context, focus *models.DailyFocus) error {
	f.rows[focusRowKey(focus.ProjectID, focus.FocusDate)] = focus
	return nil
}

func (f *fakeFocusStore) Delete(_ context.Context, projectID int64, date string) error {
	key := focusRowKey(projectID, date)
	if _, ok := f.rows[key]; !ok {
		return apperrors.ErrFocusNotSet
	}
	delete(f.rows, key)
	return nil
}

type fakeProjectStore struct {
	projects map[int64]*models.Project
}

func (f *fakeProjectStore) GetByID(_ context.Context, id int64) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

func newFocusService(store *fakeFocusStore) DailyFocusService {
	projects := &fakeProjectStore{projects: map[int64]*models.Project{1: {ID: 1, Name: "Onboarding"}}}
	return NewDailyFocusService(store, projects)
}

func TestSetFocusThenGetServedFromCache(t *testing.T) {
	store := newFakeFocusStore()
	service := newFocusService(store)

	_, err := service.SetFocus(context.Background(), 1, "2026-09-01", &dto.DailyFocusRequest{Focus: "Kickoff"})
	require.NoError(t, err)

	resp, err := service.GetFocus(context.Background(), 1, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", resp.Focus)
	assert.Equal(t, 0, store.gets, "read after write should not hit the store")
}

func TestSetFocusOverwritesCachedText(t *testing.T) {
	store := newFakeFocusStore()
	service := newFocusService(store)

	_, err := service.SetFocus(context.Background(), 1, "2026-09-01", &dto.DailyFocusRequest{Focus: "Kickoff"})
	require.NoError(t, err)
	_, err = service.SetFocus(context.Background(), 1, "2026-09-01", &dto.DailyFocusRequest{Focus: "Kickoff and intros"})
	require.NoError(t, err)

	resp, err := service.GetFocus(context.Background(), 1, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "Kickoff and intros", resp.Focus)
}

func TestGetFocusFallsBackToStore(t *testing.T) {
	store := newFakeFocusStore()
	store.rows[focusRowKey(1, "2026-09-02")] = &models.DailyFocus{
		ProjectID: 1, FocusDate: "2026-09-02", Focus: "Retro",
	}
	service := newFocusService(store)

	resp, err := service.GetFocus(context.Background(), 1, "2026-09-02")
	require.NoError(t, err)
	assert.Equal(t, "Retro", resp.Focus)
	assert.Equal(t, 1, store.gets)

	// Second read is served from cache.
	_, err = service.GetFocus(context.Background(), 1, "2026-09-02")
	require.NoError(t, err)
	assert.Equal(t, 1, store.gets)
}

func TestGetFocusUnsetDay(t *testing.T) {
	store := newFakeFocusStore()
	service := newFocusService(store)

	_, err := service.GetFocus(context.Background(), 1, "2026-09-03")
	assert.ErrorIs(t, err, apperrors.ErrFocusNotSet)

	_, err = service.GetFocus(context.Background(), 99, "2026-09-03")
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestClearFocusEvictsCacheEntry(t *testing.T) {
	store := newFakeFocusStore()
	service := newFocusService(store)

	_, err := service.SetFocus(context.Background(), 1, "2026-09-01", &dto.DailyFocusRequest{Focus: "Kickoff"})
	require.NoError(t, err)
	require.NoError(t, service.ClearFocus(context.Background(), 1, "2026-09-01"))

	_, err = service.GetFocus(context.Background(), 1, "2026-09-01")
	assert.ErrorIs(t, err, apperrors.ErrFocusNotSet)
}

func TestFocusRejectsMalformedDate(t *testing.T) {
	store := newFakeFocusStore()
	service := newFocusService(store)

	_, err := service.GetFocus(context.Background(), 1, "01-09-2026")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.SetFocus(context.Background(), 1, "not-a-date", &dto.DailyFocusRequest{Focus: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
