package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
)

type fakeEventStore struct {
	events    map[int64]*models.Event
	attendees map[int64][]*models.EventAttendee
	groups    map[int64][]*models.Group

	addErrs map[int64]error // participant id -> forced failure
	nextID  int64

	// blockRemove makes RemoveAttendee wait until released, for
	// exercising the in-flight guard.
	blockRemove chan struct{}
	removing    chan struct{}
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events:    make(map[int64]*models.Event),
		attendees: make(map[int64][]*models.EventAttendee),
		groups:    make(map[int64][]*models.Group),
		addErrs:   make(map[int64]error),
		nextID:    100,
	}
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventStore) GetDirectAttendees(_ context.Context, eventID int64) ([]*models.EventAttendee, error) {
	return f.attendees[eventID], nil
}

func (f *fakeEventStore) GetAttachedGroups(_ context.Context, eventID int64) ([]*models.Group, error) {
	return f.groups[eventID], nil
}

func (f *fakeEventStore) GetAttendee(_ context.Context, eventID, participantID int64) (*models.EventAttendee, error) {
	for _, a := range f.attendees[eventID] {
		if a.ParticipantID == participantID {
			return a, nil
		}
	}
	return nil, apperrors.ErrAttendeeNotFound
}

func (f *fakeEventStore) AddAttendee(_ context.Context, eventID, participantID int64, status models.AttendanceStatus) (*models.EventAttendee, error) {
	if err := f.addErrs[participantID]; err != nil {
		return nil, err
	}
	for _, a := range f.attendees[eventID] {
		if a.ParticipantID == participantID {
			return nil, apperrors.ErrAlreadyAttending
		}
	}
	f.nextID++
	attendee := &models.EventAttendee{
		ID:            f.nextID,
		EventID:       eventID,
		ParticipantID: participantID,
		Status:        status,
	}
	f.attendees[eventID] = append(f.attendees[eventID], attendee)
	return attendee, nil
}

func (f *fakeEventStore) RemoveAttendee(_ context.Context, eventID, participantID int64) error {
	if f.blockRemove != nil {
		close(f.removing)
		<-f.blockRemove
	}
	list := f.attendees[eventID]
	for i, a := range list {
		if a.ParticipantID == participantID {
			f.attendees[eventID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAttendeeNotFound
}

func (f *fakeEventStore) UpdateAttendeeStatus(_ context.Context, attendeeID int64, status models.AttendanceStatus) error {
	for _, list := range f.attendees {
		for _, a := range list {
			if a.ID == attendeeID {
				a.Status = status
				return nil
			}
		}
	}
	return apperrors.ErrAttendeeNotFound
}

func (f *fakeEventStore) PromoteWithStatus(_ context.Context, eventID, participantID int64, status models.AttendanceStatus) (*models.EventAttendee, error) {
	for _, a := range f.attendees[eventID] {
		if a.ParticipantID == participantID {
			a.Status = status
			return a, nil
		}
	}
	f.nextID++
	attendee := &models.EventAttendee{
		ID:            f.nextID,
		EventID:       eventID,
		ParticipantID: participantID,
		Status:        status,
	}
	f.attendees[eventID] = append(f.attendees[eventID], attendee)
	return attendee, nil
}

func (f *fakeEventStore) MoveAttendee(_ context.Context, fromEventID, toEventID, participantID int64) error {
	status := models.AttendanceScheduled
	list := f.attendees[fromEventID]
	for i, a := range list {
		if a.ParticipantID == participantID {
			status = a.Status
			f.attendees[fromEventID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	for _, a := range f.attendees[toEventID] {
		if a.ParticipantID == participantID {
			return nil
		}
	}
	f.nextID++
	f.attendees[toEventID] = append(f.attendees[toEventID], &models.EventAttendee{
		ID:            f.nextID,
		EventID:       toEventID,
		ParticipantID: participantID,
		Status:        status,
	})
	return nil
}

func (f *fakeEventStore) AttachGroup(_ context.Context, eventID, groupID int64) error {
	for _, g := range f.groups[eventID] {
		if g.ID == groupID {
			return apperrors.ErrGroupAlreadyAttached
		}
	}
	f.groups[eventID] = append(f.groups[eventID], &models.Group{ID: groupID, Name: "group"})
	return nil
}

type fakeGroupStore struct {
	groups  map[int64]*models.Group
	members map[int64][]*models.Participant
	moved   []int64
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{
		groups:  make(map[int64]*models.Group),
		members: make(map[int64][]*models.Participant),
	}
}

func (f *fakeGroupStore) GetByID(_ context.Context, id int64) (*models.Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	return group, nil
}

func (f *fakeGroupStore) GetMembers(_ context.Context, groupID int64) ([]*models.Participant, error) {
	return f.members[groupID], nil
}

func (f *fakeGroupStore) MoveMember(_ context.Context, _ int64, participantID int64, _, _ *int64) error {
	f.moved = append(f.moved, participantID)
	return nil
}

type fakeCourseStore struct {
	courses map[int64]*models.Course
}

func (f *fakeCourseStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func newParticipant(id int64, first, last string) *models.Participant {
	return &models.Participant{ID: id, FirstName: first, LastName: last, IsActive: true}
}

func directAttendee(id, eventID, participantID int64, status models.AttendanceStatus, p *models.Participant) *models.EventAttendee {
	return &models.EventAttendee{
		ID:            id,
		EventID:       eventID,
		ParticipantID: participantID,
		Status:        status,
		Participant:   p,
	}
}

func cappedCourse(id int64, max int) *models.Course {
	return &models.Course{ID: id, Name: "course", MaxParticipants: &max}
}

func newTestService(events *fakeEventStore, groups *fakeGroupStore, courses *fakeCourseStore) AttendanceService {
	if groups == nil {
		groups = newFakeGroupStore()
	}
	if courses == nil {
		courses = &fakeCourseStore{courses: make(map[int64]*models.Course)}
	}
	return NewAttendanceService(events, groups, courses)
}

func TestListAttendeesMergesSourcesDirectWins(t *testing.T) {
	events := newFakeEventStore()
	groups := newFakeGroupStore()

	events.events[1] = &models.Event{ID: 1, ProjectID: 1}
	alice := newParticipant(10, "Alice", "Ng")
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(500, 1, 10, models.AttendancePresent, alice),
	}
	events.groups[1] = []*models.Group{{ID: 7, Name: "Team Blue"}}
	groups.members[7] = []*models.Participant{
		alice, // also in the group; direct row must win
		newParticipant(11, "Bob", "Adams"),
	}

	service := newTestService(events, groups, nil)
	resp, err := service.ListAttendees(context.Background(), 1, "")
	require.NoError(t, err)

	require.Len(t, resp.Attendees, 2)
	// Sorted by last name: Adams before Ng.
	assert.Equal(t, int64(11), resp.Attendees[0].ParticipantID)
	assert.False(t, resp.Attendees[0].IsDirect)
	assert.Equal(t, "Team Blue", resp.Attendees[0].FromGroupName)
	assert.Equal(t, models.AttendanceScheduled, resp.Attendees[0].Status)

	assert.Equal(t, int64(10), resp.Attendees[1].ParticipantID)
	assert.True(t, resp.Attendees[1].IsDirect)
	assert.Equal(t, models.AttendancePresent, resp.Attendees[1].Status)
}

func TestListAttendeesQueryFilter(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(1, 1, 10, models.AttendanceScheduled, newParticipant(10, "Héloïse", "Moreau")),
		directAttendee(2, 1, 11, models.AttendanceScheduled, newParticipant(11, "Bob", "Adams")),
	}

	service := newTestService(events, nil, nil)
	resp, err := service.ListAttendees(context.Background(), 1, "heloise")
	require.NoError(t, err)

	require.Len(t, resp.Attendees, 1)
	assert.Equal(t, int64(10), resp.Attendees[0].ParticipantID)
}

func TestBatchAddRejectsWholeBatchOverCapacity(t *testing.T) {
	events := newFakeEventStore()
	courses := &fakeCourseStore{courses: map[int64]*models.Course{3: cappedCourse(3, 5)}}

	courseID := int64(3)
	events.events[1] = &models.Event{ID: 1, CourseID: &courseID}
	for i := int64(1); i <= 4; i++ {
		events.attendees[1] = append(events.attendees[1],
			directAttendee(i, 1, i, models.AttendanceScheduled, newParticipant(i, "P", "P")))
	}

	service := newTestService(events, nil, courses)
	_, err := service.BatchAdd(context.Background(), 1, &dto.BatchAddRequest{
		ParticipantIDs: []int64{20, 21},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, 1, custom.Details["spotsRemaining"])
	assert.Equal(t, 2, custom.Details["requested"])

	// Nothing was applied: one spot was free but the batch is all or nothing.
	assert.Len(t, events.attendees[1], 4)
}

func TestBatchAddCountsGroupMembersAgainstCapacity(t *testing.T) {
	events := newFakeEventStore()
	groups := newFakeGroupStore()
	courses := &fakeCourseStore{courses: map[int64]*models.Course{3: cappedCourse(3, 3)}}

	courseID := int64(3)
	events.events[1] = &models.Event{ID: 1, CourseID: &courseID}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(1, 1, 10, models.AttendanceScheduled, newParticipant(10, "A", "A")),
	}
	groups.members[7] = []*models.Participant{
		newParticipant(20, "B", "B"),
		newParticipant(21, "C", "C"),
		newParticipant(22, "D", "D"),
	}

	service := newTestService(events, groups, courses)
	_, err := service.BatchAdd(context.Background(), 1, &dto.BatchAddRequest{GroupIDs: []int64{7}})
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.Empty(t, events.groups[1])
}

func TestBatchAddPartialFailureContinues(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(1, 1, 10, models.AttendanceScheduled, newParticipant(10, "A", "A")),
	}
	events.addErrs[21] = errors.New("insert failed")

	service := newTestService(events, nil, nil)
	report, err := service.BatchAdd(context.Background(), 1, &dto.BatchAddRequest{
		ParticipantIDs: []int64{10, 21, 22},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Requested)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 1, report.AlreadyPresent)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, int64(21), report.Failures[0].ID)
	assert.Equal(t, "participant", report.Failures[0].Kind)

	// 22 went in even though 21 failed before it.
	assert.Len(t, events.attendees[1], 2)
}

func TestBatchAddArchivedEvent(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1, IsArchived: true}

	service := newTestService(events, nil, nil)
	_, err := service.BatchAdd(context.Background(), 1, &dto.BatchAddRequest{ParticipantIDs: []int64{10}})
	assert.ErrorIs(t, err, apperrors.ErrEventArchived)
}

func TestUpdateStatusPromotesGroupDerivedAttendee(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}
	events.groups[1] = []*models.Group{{ID: 3, Name: "Cohort"}}
	groups := newFakeGroupStore()
	groups.members[3] = []*models.Participant{newParticipant(42, "G", "Member")}

	service := newTestService(events, groups, nil)
	attendee, err := service.UpdateStatus(context.Background(), 1, 42, "late")
	require.NoError(t, err)

	assert.Equal(t, int64(42), attendee.ParticipantID)
	assert.Equal(t, models.AttendanceLate, attendee.Status)

	// The promotion created a real direct row.
	require.Len(t, events.attendees[1], 1)
	assert.Equal(t, models.AttendanceLate, events.attendees[1][0].Status)
}

func TestUpdateStatusExistingRow(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(5, 1, 10, models.AttendanceScheduled, newParticipant(10, "A", "A")),
	}

	service := newTestService(events, nil, nil)
	attendee, err := service.UpdateStatus(context.Background(), 1, 10, "absent")
	require.NoError(t, err)

	assert.Equal(t, int64(5), attendee.ID)
	assert.Equal(t, models.AttendanceAbsent, events.attendees[1][0].Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}

	service := newTestService(events, nil, nil)
	_, err := service.UpdateStatus(context.Background(), 1, 10, "attended")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateStatusArchivedEvent(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1, IsArchived: true}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(5, 1, 10, models.AttendanceScheduled, newParticipant(10, "A", "A")),
	}

	service := newTestService(events, nil, nil)
	_, err := service.UpdateStatus(context.Background(), 1, 10, "present")
	assert.ErrorIs(t, err, apperrors.ErrEventArchived)
	assert.Equal(t, models.AttendanceScheduled, events.attendees[1][0].Status)
}

func TestUpdateStatusRejectsNonMember(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}

	service := newTestService(events, nil, nil)
	_, err := service.UpdateStatus(context.Background(), 1, 42, "late")
	assert.ErrorIs(t, err, apperrors.ErrAttendeeNotFound)

	// No direct row was invented for the stranger.
	assert.Empty(t, events.attendees[1])
}

func TestRemoveAttendeeArchivedEvent(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1, IsArchived: true}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(5, 1, 10, models.AttendanceScheduled, newParticipant(10, "A", "A")),
	}

	service := newTestService(events, nil, nil)
	err := service.RemoveAttendee(context.Background(), 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrEventArchived)

	// Archived history is untouched.
	require.Len(t, events.attendees[1], 1)
}

func TestConcurrentMutationSameParticipantRejected(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(5, 1, 10, models.AttendanceScheduled, newParticipant(10, "A", "A")),
	}
	events.groups[1] = []*models.Group{{ID: 3, Name: "Cohort"}}
	events.blockRemove = make(chan struct{})
	events.removing = make(chan struct{})

	groups := newFakeGroupStore()
	groups.members[3] = []*models.Participant{newParticipant(10, "A", "A")}

	service := newTestService(events, groups, nil)

	done := make(chan error, 1)
	go func() {
		done <- service.RemoveAttendee(context.Background(), 1, 10)
	}()

	// Wait until the first mutation holds the guard.
	select {
	case <-events.removing:
	case <-time.After(time.Second):
		t.Fatal("remove never started")
	}

	_, err := service.UpdateStatus(context.Background(), 1, 10, "present")
	assert.ErrorIs(t, err, apperrors.ErrUpdateInFlight)

	close(events.blockRemove)
	require.NoError(t, <-done)

	// Guard released; the same participant can be mutated again.
	_, err = service.UpdateStatus(context.Background(), 1, 10, "present")
	assert.NoError(t, err)
}

func TestMoveAttendeeRejectsFullTarget(t *testing.T) {
	events := newFakeEventStore()
	courses := &fakeCourseStore{courses: map[int64]*models.Course{3: cappedCourse(3, 1)}}

	courseID := int64(3)
	events.events[1] = &models.Event{ID: 1}
	events.events[2] = &models.Event{ID: 2, CourseID: &courseID}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(5, 1, 10, models.AttendancePresent, newParticipant(10, "A", "A")),
	}
	events.attendees[2] = []*models.EventAttendee{
		directAttendee(6, 2, 11, models.AttendanceScheduled, newParticipant(11, "B", "B")),
	}

	service := newTestService(events, nil, courses)
	err := service.MoveAttendee(context.Background(), 1, 10, 2)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	// Participant is still in the source event.
	require.Len(t, events.attendees[1], 1)
}

func TestMoveAttendeeCarriesStatus(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}
	events.events[2] = &models.Event{ID: 2}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(5, 1, 10, models.AttendancePresent, newParticipant(10, "A", "A")),
	}

	service := newTestService(events, nil, nil)
	require.NoError(t, service.MoveAttendee(context.Background(), 1, 10, 2))

	assert.Empty(t, events.attendees[1])
	require.Len(t, events.attendees[2], 1)
	assert.Equal(t, models.AttendancePresent, events.attendees[2][0].Status)
}

func TestMoveAttendeeArchivedSource(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1, IsArchived: true}
	events.events[2] = &models.Event{ID: 2}
	events.attendees[1] = []*models.EventAttendee{
		directAttendee(5, 1, 10, models.AttendancePresent, newParticipant(10, "A", "A")),
	}

	service := newTestService(events, nil, nil)
	err := service.MoveAttendee(context.Background(), 1, 10, 2)
	assert.ErrorIs(t, err, apperrors.ErrEventArchived)

	require.Len(t, events.attendees[1], 1)
	assert.Empty(t, events.attendees[2])
}

func TestMoveAttendeeUnknownParticipant(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}
	events.events[2] = &models.Event{ID: 2}

	service := newTestService(events, nil, nil)
	err := service.MoveAttendee(context.Background(), 1, 10, 2)
	assert.ErrorIs(t, err, apperrors.ErrAttendeeNotFound)

	// The move did not quietly become an add on the target.
	assert.Empty(t, events.attendees[2])
}

func TestMoveAttendeeSameEvent(t *testing.T) {
	events := newFakeEventStore()
	events.events[1] = &models.Event{ID: 1}

	service := newTestService(events, nil, nil)
	err := service.MoveAttendee(context.Background(), 1, 10, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestMoveGroupMemberValidatesTargetProject(t *testing.T) {
	events := newFakeEventStore()
	groups := newFakeGroupStore()
	groups.groups[7] = &models.Group{ID: 7, ProjectID: 2, Name: "Other project"}

	service := newTestService(events, groups, nil)
	to := int64(7)
	err := service.MoveGroupMember(context.Background(), 1, &dto.MoveGroupMemberRequest{
		ParticipantID: 10,
		ToGroupID:     &to,
	})
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
	assert.Empty(t, groups.moved)
}

func TestMoveGroupMemberClearsMembership(t *testing.T) {
	events := newFakeEventStore()
	groups := newFakeGroupStore()

	service := newTestService(events, groups, nil)
	from := int64(7)
	err := service.MoveGroupMember(context.Background(), 1, &dto.MoveGroupMemberRequest{
		ParticipantID: 10,
		FromGroupID:   &from,
		ToGroupID:     nil,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, groups.moved)
}
