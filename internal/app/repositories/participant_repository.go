package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
	"github.com/kaan/traintrack/internal/pkg/helpers"
)

// ParticipantRepository handles database operations for participants
type ParticipantRepository struct {
	db *pgxpool.Pool
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Create enrolls a new participant into a project
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	query := `
		INSERT INTO participants (project_id, first_name, last_name, email, phone, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		participant.ProjectID, participant.FirstName, participant.LastName,
		participant.Email, participant.Phone, participant.Role,
	).Scan(&participant.ID, &participant.IsActive, &participant.CreatedAt, &participant.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a participant by ID
func (r *ParticipantRepository) GetByID(ctx context.Context, id int64) (*models.Participant, error) {
	query := `
		SELECT id, project_id, first_name, last_name, email, phone, role, is_active, created_at, updated_at
		FROM participants
		WHERE id = $1
	`

	var participant models.Participant
	err := r.db.QueryRow(ctx, query, id).Scan(
		&participant.ID, &participant.ProjectID, &participant.FirstName, &participant.LastName,
		&participant.Email, &participant.Phone, &participant.Role, &participant.IsActive,
		&participant.CreatedAt, &participant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("error retrieving participant: %w", err)
	}

	return &participant, nil
}

// GetByProject retrieves one page of a project's roster. When activeOnly
// is set, soft-removed participants are excluded. The returned pagination
// metadata reflects the filtered total, not the page.
func (r *ParticipantRepository) GetByProject(ctx context.Context, projectID int64, activeOnly bool, page, size int) ([]*models.Participant, dto.PaginationInfo, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM participants
		WHERE project_id = $1 AND ($2 = FALSE OR is_active = TRUE)
	`

	var totalItems int64
	if err := r.db.QueryRow(ctx, countQuery, projectID, activeOnly).Scan(&totalItems); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error counting participants: %w", err)
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Participant{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)

	query := `
		SELECT id, project_id, first_name, last_name, email, phone, role, is_active, created_at, updated_at
		FROM participants
		WHERE project_id = $1 AND ($2 = FALSE OR is_active = TRUE)
		ORDER BY last_name, first_name
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, projectID, activeOnly, limit, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0, limit)
	for rows.Next() {
		var participant models.Participant
		if err := rows.Scan(
			&participant.ID, &participant.ProjectID, &participant.FirstName, &participant.LastName,
			&participant.Email, &participant.Phone, &participant.Role, &participant.IsActive,
			&participant.CreatedAt, &participant.UpdatedAt,
		); err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		participants = append(participants, &participant)
	}

	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return participants, pagination, nil
}

// Update updates a participant's contact fields
func (r *ParticipantRepository) Update(ctx context.Context, participant *models.Participant) error {
	query := `
		UPDATE participants
		SET first_name = $1, last_name = $2, email = $3, phone = $4, role = $5, updated_at = NOW()
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		participant.FirstName, participant.LastName, participant.Email,
		participant.Phone, participant.Role, participant.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating participant: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}

	return nil
}

// Deactivate soft-removes a participant. The row stays so historical
// attendance and checklist data keeps resolving.
func (r *ParticipantRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE participants SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating participant: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}

	return nil
}
