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

// ChecklistRepository handles database operations for checklists and
// per-participant progress.
type ChecklistRepository struct {
	db *pgxpool.Pool
}

// NewChecklistRepository creates a new checklist repository
func NewChecklistRepository(db *pgxpool.Pool) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

// Create stores a checklist together with its items in one transaction
func (r *ChecklistRepository) Create(ctx context.Context, checklist *models.Checklist) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO checklists (project_id, name) VALUES ($1, $2) RETURNING id, created_at`,
		checklist.ProjectID, checklist.Name,
	).Scan(&checklist.ID, &checklist.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating checklist: %w", err)
	}

	for _, item := range checklist.Items {
		item.ChecklistID = checklist.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO checklist_items (checklist_id, label, position) VALUES ($1, $2, $3) RETURNING id`,
			item.ChecklistID, item.Label, item.Position,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("error creating checklist item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByProject retrieves all checklists of a project with their items
func (r *ChecklistRepository) GetByProject(ctx context.Context, projectID int64) ([]*models.Checklist, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, name, created_at FROM checklists WHERE project_id = $1 ORDER BY created_at`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checklists []*models.Checklist
	byID := make(map[int64]*models.Checklist)
	for rows.Next() {
		var checklist models.Checklist
		if err := rows.Scan(&checklist.ID, &checklist.ProjectID, &checklist.Name, &checklist.CreatedAt); err != nil {
			return nil, err
		}
		checklists = append(checklists, &checklist)
		byID[checklist.ID] = &checklist
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(checklists) == 0 {
		return checklists, nil
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT i.id, i.checklist_id, i.label, i.position
		FROM checklist_items i
		JOIN checklists c ON c.id = i.checklist_id
		WHERE c.project_id = $1
		ORDER BY i.position`, projectID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.ChecklistItem
		if err := itemRows.Scan(&item.ID, &item.ChecklistID, &item.Label, &item.Position); err != nil {
			return nil, err
		}
		if checklist, ok := byID[item.ChecklistID]; ok {
			checklist.Items = append(checklist.Items, &item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return checklists, nil
}

// GetByID retrieves a checklist with its items
func (r *ChecklistRepository) GetByID(ctx context.Context, id int64) (*models.Checklist, error) {
	var checklist models.Checklist
	err := r.db.QueryRow(ctx,
		`SELECT id, project_id, name, created_at FROM checklists WHERE id = $1`, id).
		Scan(&checklist.ID, &checklist.ProjectID, &checklist.Name, &checklist.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChecklistNotFound
		}
		return nil, fmt.Errorf("error retrieving checklist: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, checklist_id, label, position FROM checklist_items WHERE checklist_id = $1 ORDER BY position`,
		id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ChecklistItem
		if err := rows.Scan(&item.ID, &item.ChecklistID, &item.Label, &item.Position); err != nil {
			return nil, err
		}
		checklist.Items = append(checklist.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &checklist, nil
}

// Delete removes a checklist; items and progress rows cascade
func (r *ChecklistRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM checklists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting checklist: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrChecklistNotFound
	}

	return nil
}

// GetProgress retrieves the progress rows of a checklist's items for all
// participants.
func (r *ChecklistRepository) GetProgress(ctx context.Context, checklistID int64) ([]*models.ParticipantChecklistProgress, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.item_id, p.participant_id, p.completed_at
		FROM participant_checklist_progress p
		JOIN checklist_items i ON i.id = p.item_id
		WHERE i.checklist_id = $1`, checklistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progress []*models.ParticipantChecklistProgress
	for rows.Next() {
		var row models.ParticipantChecklistProgress
		if err := rows.Scan(&row.ID, &row.ItemID, &row.ParticipantID, &row.CompletedAt); err != nil {
			return nil, err
		}
		progress = append(progress, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return progress, nil
}

// SetItemDone marks an item done for a participant. Idempotent; repeating
// the call keeps the original completion time.
func (r *ChecklistRepository) SetItemDone(ctx context.Context, itemID, participantID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO participant_checklist_progress (item_id, participant_id, completed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (item_id, participant_id) DO NOTHING`,
		itemID, participantID)
	if err != nil {
		return fmt.Errorf("error recording checklist progress: %w", err)
	}

	return nil
}

// ClearItemDone unmarks an item for a participant
func (r *ChecklistRepository) ClearItemDone(ctx context.Context, itemID, participantID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM participant_checklist_progress WHERE item_id = $1 AND participant_id = $2`,
		itemID, participantID)
	if err != nil {
		return fmt.Errorf("error clearing checklist progress: %w", err)
	}

	return nil
}
