package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
	"github.com/kaan/traintrack/internal/pkg/dberrors"
)

// GroupRepository handles database operations for participant groups
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create creates a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (project_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, group.ProjectID, group.Name, group.Color).
		Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "groups_project_id_name_key") {
			return apperrors.ErrGroupAlreadyExists
		}
		return err
	}

	return nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	query := `
		SELECT id, project_id, name, color, created_at
		FROM groups
		WHERE id = $1
	`

	var group models.Group
	err := r.db.QueryRow(ctx, query, id).Scan(
		&group.ID, &group.ProjectID, &group.Name, &group.Color, &group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}

	return &group, nil
}

// GetByProject retrieves all groups of a project, members included.
func (r *GroupRepository) GetByProject(ctx context.Context, projectID int64) ([]*models.Group, error) {
	query := `
		SELECT id, project_id, name, color, created_at
		FROM groups
		WHERE project_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.ProjectID, &group.Name, &group.Color, &group.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, group := range groups {
		members, err := r.GetMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		group.Members = members
	}

	return groups, nil
}

// GetMembers retrieves the active members of a group. Group membership is
// live: this is re-read on every merge, never cached in the group row.
func (r *GroupRepository) GetMembers(ctx context.Context, groupID int64) ([]*models.Participant, error) {
	query := `
		SELECT p.id, p.project_id, p.first_name, p.last_name, p.email, p.phone, p.role, p.is_active, p.created_at, p.updated_at
		FROM group_members gm
		JOIN participants p ON p.id = gm.participant_id
		WHERE gm.group_id = $1 AND p.is_active = TRUE
		ORDER BY p.last_name, p.first_name
	`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Participant
	for rows.Next() {
		var participant models.Participant
		if err := rows.Scan(
			&participant.ID, &participant.ProjectID, &participant.FirstName, &participant.LastName,
			&participant.Email, &participant.Phone, &participant.Role, &participant.IsActive,
			&participant.CreatedAt, &participant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, &participant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

// Update renames or recolors a group
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE groups SET name = $1, color = $2 WHERE id = $3`,
		group.Name, group.Color, group.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "groups_project_id_name_key") {
			return apperrors.ErrGroupAlreadyExists
		}
		return fmt.Errorf("error updating group: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// Delete deletes a group; memberships and event attachments cascade.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting group: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// AddMember adds a participant to a group
func (r *GroupRepository) AddMember(ctx context.Context, groupID, participantID int64) error {
	query := `
		INSERT INTO group_members (group_id, participant_id)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, groupID, participantID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrMemberAlreadyExists
		}
		return fmt.Errorf("error adding group member: %w", err)
	}

	return nil
}

// RemoveMember removes a participant from a group
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, participantID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND participant_id = $2`,
		groupID, participantID,
	)
	if err != nil {
		return fmt.Errorf("error removing group member: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// MoveMember moves a participant between groups in one transaction.
// A nil fromGroupID asserts the participant was in no group (nothing is
// removed); a nil toGroupID removes the participant from all groups of
// the project.
func (r *GroupRepository) MoveMember(ctx context.Context, projectID, participantID int64, fromGroupID, toGroupID *int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if fromGroupID != nil {
		_, err = tx.Exec(ctx,
			`DELETE FROM group_members WHERE group_id = $1 AND participant_id = $2`,
			*fromGroupID, participantID,
		)
		if err != nil {
			return fmt.Errorf("error removing member from source group: %w", err)
		}
	}

	if toGroupID == nil {
		// Remove from group membership entirely.
		_, err = tx.Exec(ctx, `
			DELETE FROM group_members
			WHERE participant_id = $1
			  AND group_id IN (SELECT id FROM groups WHERE project_id = $2)`,
			participantID, projectID,
		)
		if err != nil {
			return fmt.Errorf("error clearing group membership: %w", err)
		}
	} else {
		_, err = tx.Exec(ctx, `
			INSERT INTO group_members (group_id, participant_id)
			VALUES ($1, $2)
			ON CONFLICT (group_id, participant_id) DO NOTHING`,
			*toGroupID, participantID,
		)
		if err != nil {
			return fmt.Errorf("error adding member to target group: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
