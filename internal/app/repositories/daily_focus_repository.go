package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
)

// DailyFocusRepository handles database operations for per-day project
// focus notes. One row per (project, date).
type DailyFocusRepository struct {
	db *pgxpool.Pool
}

// NewDailyFocusRepository creates a new daily focus repository
func NewDailyFocusRepository(db *pgxpool.Pool) *DailyFocusRepository {
	return &DailyFocusRepository{db: db}
}

// Get retrieves the focus note for a project day
func (r *DailyFocusRepository) Get(ctx context.Context, projectID int64, date string) (*models.DailyFocus, error) {
	query := `
		SELECT id, project_id, to_char(focus_date, 'YYYY-MM-DD'), focus, updated_at
		FROM daily_focus
		WHERE project_id = $1 AND focus_date = $2
	`

	var focus models.DailyFocus
	err := r.db.QueryRow(ctx, query, projectID, date).Scan(
		&focus.ID, &focus.ProjectID, &focus.FocusDate, &focus.Focus, &focus.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFocusNotSet
		}
		return nil, fmt.Errorf("error retrieving daily focus: %w", err)
	}

	return &focus, nil
}

// Upsert stores the focus note for a project day, replacing any earlier
// text for the same day.
func (r *DailyFocusRepository) Upsert(ctx context.Context, focus *models.DailyFocus) error {
	query := `
		INSERT INTO daily_focus (project_id, focus_date, focus)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, focus_date) DO UPDATE SET focus = EXCLUDED.focus, updated_at = NOW()
		RETURNING id, updated_at
	`

	err := r.db.QueryRow(ctx, query, focus.ProjectID, focus.FocusDate, focus.Focus).
		Scan(&focus.ID, &focus.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving daily focus: %w", err)
	}

	return nil
}

// Delete removes the focus note for a project day
func (r *DailyFocusRepository) Delete(ctx context.Context, projectID int64, date string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM daily_focus WHERE project_id = $1 AND focus_date = $2`,
		projectID, date)
	if err != nil {
		return fmt.Errorf("error deleting daily focus: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFocusNotSet
	}

	return nil
}
