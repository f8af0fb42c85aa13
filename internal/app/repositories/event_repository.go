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

// EventRepository handles database operations for events and their two
// membership sources (direct attendees and attached groups).
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create schedules a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (project_id, title, description, starts_at, ends_at, course_id, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_archived, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		event.ProjectID, event.Title, event.Description, event.StartsAt,
		event.EndsAt, event.CourseID, event.Location,
	).Scan(&event.ID, &event.IsArchived, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT id, project_id, title, description, starts_at, ends_at, course_id, location, is_archived, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event models.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID, &event.ProjectID, &event.Title, &event.Description, &event.StartsAt,
		&event.EndsAt, &event.CourseID, &event.Location, &event.IsArchived,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	return &event, nil
}

// GetByProject retrieves all events of a project in start order
func (r *EventRepository) GetByProject(ctx context.Context, projectID int64) ([]*models.Event, error) {
	query := `
		SELECT id, project_id, title, description, starts_at, ends_at, course_id, location, is_archived, created_at, updated_at
		FROM events
		WHERE project_id = $1
		ORDER BY starts_at
	`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID, &event.ProjectID, &event.Title, &event.Description, &event.StartsAt,
			&event.EndsAt, &event.CourseID, &event.Location, &event.IsArchived,
			&event.CreatedAt, &event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Update reschedules or retitles an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, starts_at = $3, ends_at = $4, course_id = $5, location = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		event.Title, event.Description, event.StartsAt, event.EndsAt,
		event.CourseID, event.Location, event.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Archive marks an event archived. Archived events keep their attendance
// history; they are never deleted while history references them.
func (r *EventRepository) Archive(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE events SET is_archived = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error archiving event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// GetDirectAttendees retrieves the direct attendee rows of an event with
// their participants populated.
func (r *EventRepository) GetDirectAttendees(ctx context.Context, eventID int64) ([]*models.EventAttendee, error) {
	query := `
		SELECT ea.id, ea.event_id, ea.participant_id, ea.status, ea.enrolled_at,
		       p.id, p.project_id, p.first_name, p.last_name, p.email, p.phone, p.role, p.is_active, p.created_at, p.updated_at
		FROM event_attendees ea
		JOIN participants p ON p.id = ea.participant_id
		WHERE ea.event_id = $1
		ORDER BY ea.enrolled_at
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []*models.EventAttendee
	for rows.Next() {
		var attendee models.EventAttendee
		var participant models.Participant
		if err := rows.Scan(
			&attendee.ID, &attendee.EventID, &attendee.ParticipantID, &attendee.Status, &attendee.EnrolledAt,
			&participant.ID, &participant.ProjectID, &participant.FirstName, &participant.LastName,
			&participant.Email, &participant.Phone, &participant.Role, &participant.IsActive,
			&participant.CreatedAt, &participant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		attendee.Participant = &participant
		attendees = append(attendees, &attendee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attendees, nil
}

// GetAttendee retrieves one direct attendee row by event and participant
func (r *EventRepository) GetAttendee(ctx context.Context, eventID, participantID int64) (*models.EventAttendee, error) {
	query := `
		SELECT id, event_id, participant_id, status, enrolled_at
		FROM event_attendees
		WHERE event_id = $1 AND participant_id = $2
	`

	var attendee models.EventAttendee
	err := r.db.QueryRow(ctx, query, eventID, participantID).Scan(
		&attendee.ID, &attendee.EventID, &attendee.ParticipantID, &attendee.Status, &attendee.EnrolledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("error retrieving event attendee: %w", err)
	}

	return &attendee, nil
}

// AddAttendee inserts a direct attendee row
func (r *EventRepository) AddAttendee(ctx context.Context, eventID, participantID int64, status models.AttendanceStatus) (*models.EventAttendee, error) {
	query := `
		INSERT INTO event_attendees (event_id, participant_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, event_id, participant_id, status, enrolled_at
	`

	var attendee models.EventAttendee
	err := r.db.QueryRow(ctx, query, eventID, participantID, status).Scan(
		&attendee.ID, &attendee.EventID, &attendee.ParticipantID, &attendee.Status, &attendee.EnrolledAt,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyAttending
		}
		return nil, fmt.Errorf("error adding event attendee: %w", err)
	}

	return &attendee, nil
}

// RemoveAttendee deletes a direct attendee row
func (r *EventRepository) RemoveAttendee(ctx context.Context, eventID, participantID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1 AND participant_id = $2`,
		eventID, participantID,
	)
	if err != nil {
		return fmt.Errorf("error removing event attendee: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendeeNotFound
	}

	return nil
}

// UpdateAttendeeStatus updates the status of an existing direct attendee
// row, keyed by the join-row id.
func (r *EventRepository) UpdateAttendeeStatus(ctx context.Context, attendeeID int64, status models.AttendanceStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE event_attendees SET status = $1 WHERE id = $2`, status, attendeeID)
	if err != nil {
		return fmt.Errorf("error updating attendance status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendeeNotFound
	}

	return nil
}

// PromoteWithStatus upserts a direct attendee row carrying the given
// status. Used when a status is recorded for a participant whose
// membership was only group-derived: there is no join row to update, so
// one is created (promotion to direct).
func (r *EventRepository) PromoteWithStatus(ctx context.Context, eventID, participantID int64, status models.AttendanceStatus) (*models.EventAttendee, error) {
	query := `
		INSERT INTO event_attendees (event_id, participant_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, participant_id) DO UPDATE SET status = EXCLUDED.status
		RETURNING id, event_id, participant_id, status, enrolled_at
	`

	var attendee models.EventAttendee
	err := r.db.QueryRow(ctx, query, eventID, participantID, status).Scan(
		&attendee.ID, &attendee.EventID, &attendee.ParticipantID, &attendee.Status, &attendee.EnrolledAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error promoting event attendee: %w", err)
	}

	return &attendee, nil
}

// MoveAttendee transfers a participant's direct membership from one event
// to another in a single transaction. The recorded status travels with
// the participant; a participant without a direct row in the source is
// added to the target as scheduled. Rolling the two legs into one
// transaction means a failed target-add can never strand the participant
// in neither event.
func (r *EventRepository) MoveAttendee(ctx context.Context, fromEventID, toEventID, participantID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	status := models.AttendanceScheduled
	err = tx.QueryRow(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1 AND participant_id = $2 RETURNING status`,
		fromEventID, participantID,
	).Scan(&status)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error removing attendee from source event: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO event_attendees (event_id, participant_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, participant_id) DO NOTHING`,
		toEventID, participantID, status,
	)
	if err != nil {
		return fmt.Errorf("error adding attendee to target event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAttachedGroups retrieves the groups attached to an event
func (r *EventRepository) GetAttachedGroups(ctx context.Context, eventID int64) ([]*models.Group, error) {
	query := `
		SELECT g.id, g.project_id, g.name, g.color, g.created_at
		FROM event_groups eg
		JOIN groups g ON g.id = eg.group_id
		WHERE eg.event_id = $1
		ORDER BY eg.attached_at
	`

	rows, err := r.db.Query(ctx, query, eventID)
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

	return groups, nil
}

// AttachGroup attaches a group to an event
func (r *EventRepository) AttachGroup(ctx context.Context, eventID, groupID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO event_groups (event_id, group_id) VALUES ($1, $2)`,
		eventID, groupID,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrGroupAlreadyAttached
		}
		return fmt.Errorf("error attaching group to event: %w", err)
	}

	return nil
}

// DetachGroup detaches a group from an event
func (r *EventRepository) DetachGroup(ctx context.Context, eventID, groupID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM event_groups WHERE event_id = $1 AND group_id = $2`,
		eventID, groupID,
	)
	if err != nil {
		return fmt.Errorf("error detaching group from event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}
