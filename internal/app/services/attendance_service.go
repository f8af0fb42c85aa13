package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kaan/traintrack/internal/app/attendance"
	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
	"github.com/kaan/traintrack/internal/pkg/logger"
)

// EventStore is the event persistence surface the attendance service
// needs. Implemented by repositories.EventRepository.
type EventStore interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetDirectAttendees(ctx context.Context, eventID int64) ([]*models.EventAttendee, error)
	GetAttachedGroups(ctx context.Context, eventID int64) ([]*models.Group, error)
	GetAttendee(ctx context.Context, eventID, participantID int64) (*models.EventAttendee, error)
	AddAttendee(ctx context.Context, eventID, participantID int64, status models.AttendanceStatus) (*models.EventAttendee, error)
	RemoveAttendee(ctx context.Context, eventID, participantID int64) error
	UpdateAttendeeStatus(ctx context.Context, attendeeID int64, status models.AttendanceStatus) error
	PromoteWithStatus(ctx context.Context, eventID, participantID int64, status models.AttendanceStatus) (*models.EventAttendee, error)
	MoveAttendee(ctx context.Context, fromEventID, toEventID, participantID int64) error
	AttachGroup(ctx context.Context, eventID, groupID int64) error
}

// GroupStore is the group persistence surface the attendance service
// needs. Implemented by repositories.GroupRepository.
type GroupStore interface {
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	GetMembers(ctx context.Context, groupID int64) ([]*models.Participant, error)
	MoveMember(ctx context.Context, projectID, participantID int64, fromGroupID, toGroupID *int64) error
}

// CourseStore resolves the course an event draws its participant limit
// from. Implemented by repositories.CurriculumRepository.
type CourseStore interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
}

// AttendanceService defines the operations on an event's merged attendee
// list. All mutations are routed through here so the per-participant
// in-flight guard covers every path.
type AttendanceService interface {
	ListAttendees(ctx context.Context, eventID int64, query string) (*dto.AttendeeListResponse, error)
	BatchAdd(ctx context.Context, eventID int64, req *dto.BatchAddRequest) (*dto.BatchAddReport, error)
	RemoveAttendee(ctx context.Context, eventID, participantID int64) error
	UpdateStatus(ctx context.Context, eventID, participantID int64, rawStatus string) (*models.EventAttendee, error)
	MoveAttendee(ctx context.Context, eventID, participantID, targetEventID int64) error
	MoveGroupMember(ctx context.Context, projectID int64, req *dto.MoveGroupMemberRequest) error
}

// attendanceServiceImpl implements AttendanceService
type attendanceServiceImpl struct {
	eventStore  EventStore
	groupStore  GroupStore
	courseStore CourseStore

	// inflight tracks participants with a mutation still running.
	// Concurrent mutations for the same participant are rejected
	// instead of queued so a stale second write cannot overtake the
	// first.
	mu       sync.Mutex
	inflight map[int64]struct{}
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(eventStore EventStore, groupStore GroupStore, courseStore CourseStore) AttendanceService {
	return &attendanceServiceImpl{
		eventStore:  eventStore,
		groupStore:  groupStore,
		courseStore: courseStore,
		inflight:    make(map[int64]struct{}),
	}
}

func (s *attendanceServiceImpl) acquire(participantID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[participantID]; busy {
		return false
	}
	s.inflight[participantID] = struct{}{}
	return true
}

func (s *attendanceServiceImpl) release(participantID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, participantID)
}

// ListAttendees returns the merged, deduplicated attendee list of an
// event: direct rows first, then members of attached groups, with direct
// rows winning any identity collision. The list is sorted by name and
// optionally filtered by a free-text query.
func (s *attendanceServiceImpl) ListAttendees(ctx context.Context, eventID int64, query string) (*dto.AttendeeListResponse, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	merged, capacity, err := s.resolveAttendees(ctx, event)
	if err != nil {
		return nil, err
	}

	attendance.SortByName(merged)

	if query != "" {
		filtered := make([]*attendance.Resolved, 0, len(merged))
		for _, entry := range merged {
			if attendance.MatchesQuery(entry, query) {
				filtered = append(filtered, entry)
			}
		}
		merged = filtered
	}

	return &dto.AttendeeListResponse{
		EventID:   event.ID,
		Attendees: merged,
		Capacity:  capacity,
	}, nil
}

// resolveAttendees loads both membership sources of an event, merges
// them and evaluates capacity against the merged count. The capacity
// block reflects the unfiltered list.
func (s *attendanceServiceImpl) resolveAttendees(ctx context.Context, event *models.Event) ([]*attendance.Resolved, attendance.Capacity, error) {
	attendees, err := s.eventStore.GetDirectAttendees(ctx, event.ID)
	if err != nil {
		return nil, attendance.Capacity{}, fmt.Errorf("error loading direct attendees: %w", err)
	}

	directs := make([]attendance.Record, 0, len(attendees))
	for _, a := range attendees {
		directs = append(directs, directRecord(a))
	}

	groups, err := s.eventStore.GetAttachedGroups(ctx, event.ID)
	if err != nil {
		return nil, attendance.Capacity{}, fmt.Errorf("error loading attached groups: %w", err)
	}

	groupMembers := make([]attendance.GroupMembers, 0, len(groups))
	for _, group := range groups {
		members, err := s.groupStore.GetMembers(ctx, group.ID)
		if err != nil {
			return nil, attendance.Capacity{}, fmt.Errorf("error loading members of group %d: %w", group.ID, err)
		}
		records := make([]attendance.Record, 0, len(members))
		for _, member := range members {
			records = append(records, memberRecord(member))
		}
		groupMembers = append(groupMembers, attendance.GroupMembers{
			GroupID: group.ID,
			Name:    group.Name,
			Members: records,
		})
	}

	merged, dropped := attendance.Merge(directs, groupMembers)
	if dropped > 0 {
		logger.Warn().
			Int64("event_id", event.ID).
			Int("dropped", dropped).
			Msg("Dropped attendee records with no resolvable identity")
	}

	capacity, err := s.eventCapacity(ctx, event, len(merged))
	if err != nil {
		return nil, attendance.Capacity{}, err
	}

	return merged, capacity, nil
}

// isResolvedAttendee reports whether the participant appears in the
// event's merged view, directly or through an attached group.
func (s *attendanceServiceImpl) isResolvedAttendee(ctx context.Context, event *models.Event, participantID int64) (bool, error) {
	merged, _, err := s.resolveAttendees(ctx, event)
	if err != nil {
		return false, err
	}
	for _, entry := range merged {
		if entry.ParticipantID == participantID {
			return true, nil
		}
	}
	return false, nil
}

func (s *attendanceServiceImpl) eventCapacity(ctx context.Context, event *models.Event, count int) (attendance.Capacity, error) {
	if event.CourseID == nil {
		return attendance.EvaluateCapacity(count, nil), nil
	}

	course, err := s.courseStore.GetCourseByID(ctx, *event.CourseID)
	if err != nil {
		return attendance.Capacity{}, fmt.Errorf("error loading course for event %d: %w", event.ID, err)
	}

	return attendance.EvaluateCapacity(count, course.MaxParticipants), nil
}

// BatchAdd adds participants and attaches groups to an event, in request
// order. Capacity is checked once for the whole batch before anything is
// written: if the projected additions do not fit, the entire batch is
// rejected and no item is applied. Past that gate, items are processed
// sequentially and independently; one failing item is recorded in the
// report and does not stop the rest.
func (s *attendanceServiceImpl) BatchAdd(ctx context.Context, eventID int64, req *dto.BatchAddRequest) (*dto.BatchAddReport, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsArchived {
		return nil, apperrors.ErrEventArchived
	}

	merged, _, err := s.resolveAttendees(ctx, event)
	if err != nil {
		return nil, err
	}

	present := make(map[int64]bool, len(merged))
	for _, entry := range merged {
		present[entry.ParticipantID] = true
	}

	// Expand groups up front so the capacity gate sees the true
	// projected headcount, not just the number of request items.
	groupExpansion := make(map[int64][]*models.Participant, len(req.GroupIDs))
	projected := make(map[int64]bool)
	for _, participantID := range req.ParticipantIDs {
		if !present[participantID] {
			projected[participantID] = true
		}
	}
	for _, groupID := range req.GroupIDs {
		members, err := s.groupStore.GetMembers(ctx, groupID)
		if err != nil {
			return nil, fmt.Errorf("error loading members of group %d: %w", groupID, err)
		}
		groupExpansion[groupID] = members
		for _, member := range members {
			if !present[member.ID] {
				projected[member.ID] = true
			}
		}
	}

	capacity, err := s.eventCapacity(ctx, event, len(merged))
	if err != nil {
		return nil, err
	}
	if capacity.HasMaxLimit && len(merged)+len(projected) > *capacity.MaxParticipants {
		logger.Info().
			Int64("event_id", eventID).
			Int("requested", len(projected)).
			Int("spots_remaining", *capacity.SpotsRemaining).
			Msg("Batch add rejected, would exceed course capacity")
		return nil, apperrors.NewCapacityError(*capacity.SpotsRemaining, len(projected))
	}

	report := &dto.BatchAddReport{Requested: len(req.ParticipantIDs) + len(req.GroupIDs)}

	for _, participantID := range req.ParticipantIDs {
		_, err := s.eventStore.AddAttendee(ctx, eventID, participantID, models.AttendanceScheduled)
		switch {
		case err == nil:
			report.Added++
		case errors.Is(err, apperrors.ErrAlreadyAttending):
			report.AlreadyPresent++
		default:
			report.Failed++
			report.Failures = append(report.Failures, dto.BatchAddFailure{
				Kind:   "participant",
				ID:     participantID,
				Reason: err.Error(),
			})
			logger.Error().Err(err).
				Int64("event_id", eventID).
				Int64("participant_id", participantID).
				Msg("Failed to add participant to event")
		}
	}

	for _, groupID := range req.GroupIDs {
		err := s.eventStore.AttachGroup(ctx, eventID, groupID)
		switch {
		case err == nil:
			report.Added++
		case errors.Is(err, apperrors.ErrGroupAlreadyAttached):
			report.AlreadyPresent++
		default:
			report.Failed++
			report.Failures = append(report.Failures, dto.BatchAddFailure{
				Kind:   "group",
				ID:     groupID,
				Reason: err.Error(),
			})
			logger.Error().Err(err).
				Int64("event_id", eventID).
				Int64("group_id", groupID).
				Msg("Failed to attach group to event")
		}
	}

	return report, nil
}

// RemoveAttendee removes a participant's direct row from an event.
// Group-derived membership is untouched; detaching the group is the way
// to remove those.
func (s *attendanceServiceImpl) RemoveAttendee(ctx context.Context, eventID, participantID int64) error {
	if !s.acquire(participantID) {
		return apperrors.ErrUpdateInFlight
	}
	defer s.release(participantID)

	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.IsArchived {
		return apperrors.ErrEventArchived
	}

	return s.eventStore.RemoveAttendee(ctx, eventID, participantID)
}

// UpdateStatus records an attendance status for a participant. When the
// participant has no direct row (membership was group-derived), a direct
// row is created carrying the status: recording attendance is an
// authoritative fact about that person, so it must survive later group
// edits.
func (s *attendanceServiceImpl) UpdateStatus(ctx context.Context, eventID, participantID int64, rawStatus string) (*models.EventAttendee, error) {
	status := attendance.ProjectStatus(models.AttendanceStatus(rawStatus))
	if string(status) != rawStatus {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("unknown attendance status %q", rawStatus))
	}

	if !s.acquire(participantID) {
		return nil, apperrors.ErrUpdateInFlight
	}
	defer s.release(participantID)

	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsArchived {
		return nil, apperrors.ErrEventArchived
	}

	existing, err := s.eventStore.GetAttendee(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAttendeeNotFound) {
			// Promotion is only for group-derived members of this
			// event; anyone else has no attendance to record here.
			member, memberErr := s.isResolvedAttendee(ctx, event, participantID)
			if memberErr != nil {
				return nil, memberErr
			}
			if !member {
				return nil, apperrors.ErrAttendeeNotFound
			}
			promoted, err := s.eventStore.PromoteWithStatus(ctx, eventID, participantID, status)
			if err != nil {
				return nil, err
			}
			logger.Debug().
				Int64("event_id", eventID).
				Int64("participant_id", participantID).
				Msg("Promoted group-derived attendee to direct")
			return promoted, nil
		}
		return nil, err
	}

	if err := s.eventStore.UpdateAttendeeStatus(ctx, existing.ID, status); err != nil {
		return nil, err
	}
	existing.Status = status
	return existing, nil
}

// MoveAttendee transfers a participant from one event to another. The
// transfer is a single server-side transaction so the participant can
// never end up in neither event.
func (s *attendanceServiceImpl) MoveAttendee(ctx context.Context, eventID, participantID, targetEventID int64) error {
	if eventID == targetEventID {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"target event must differ from the source event")
	}

	if !s.acquire(participantID) {
		return apperrors.ErrUpdateInFlight
	}
	defer s.release(participantID)

	source, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if source.IsArchived {
		return apperrors.ErrEventArchived
	}
	inSource, err := s.isResolvedAttendee(ctx, source, participantID)
	if err != nil {
		return err
	}
	if !inSource {
		return apperrors.ErrAttendeeNotFound
	}

	target, err := s.eventStore.GetByID(ctx, targetEventID)
	if err != nil {
		return err
	}
	if target.IsArchived {
		return apperrors.ErrEventArchived
	}

	merged, capacity, err := s.resolveAttendees(ctx, target)
	if err != nil {
		return err
	}
	alreadyThere := false
	for _, entry := range merged {
		if entry.ParticipantID == participantID {
			alreadyThere = true
			break
		}
	}
	if !alreadyThere && capacity.HasMaxLimit && capacity.IsAtMaxCapacity {
		return apperrors.NewCapacityError(*capacity.SpotsRemaining, 1)
	}

	return s.eventStore.MoveAttendee(ctx, eventID, targetEventID, participantID)
}

// MoveGroupMember moves a participant between groups of a project. A nil
// FromGroupID means the participant had no group; a nil ToGroupID clears
// their group membership in the project. Direct event rows are untouched,
// so recorded attendance survives the move.
func (s *attendanceServiceImpl) MoveGroupMember(ctx context.Context, projectID int64, req *dto.MoveGroupMemberRequest) error {
	if !s.acquire(req.ParticipantID) {
		return apperrors.ErrUpdateInFlight
	}
	defer s.release(req.ParticipantID)

	if req.ToGroupID != nil {
		group, err := s.groupStore.GetByID(ctx, *req.ToGroupID)
		if err != nil {
			return err
		}
		if group.ProjectID != projectID {
			return apperrors.ErrGroupNotFound
		}
	}

	return s.groupStore.MoveMember(ctx, projectID, req.ParticipantID, req.FromGroupID, req.ToGroupID)
}

// directRecord maps a direct attendee join row to a merge record.
func directRecord(a *models.EventAttendee) attendance.Record {
	rec := attendance.Record{
		EnrolleeID: &a.ParticipantID,
		ID:         &a.ID,
		Status:     a.Status,
	}
	if a.Participant != nil {
		rec.FirstName = a.Participant.FirstName
		rec.LastName = a.Participant.LastName
		rec.Email = derefString(a.Participant.Email)
		rec.Role = a.Participant.Role
	}
	return rec
}

// memberRecord maps a group member to a merge record. Group rows carry a
// nested participant rather than an enrollee reference.
func memberRecord(p *models.Participant) attendance.Record {
	return attendance.Record{
		Participant: &attendance.ParticipantRef{ID: &p.ID, Email: derefString(p.Email)},
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Role:        p.Role,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
