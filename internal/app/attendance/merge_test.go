package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaan/traintrack/internal/app/models"
)

func i64(v int64) *int64 { return &v }

func TestIdentityFallbackOrder(t *testing.T) {
	rec := Record{
		EnrolleeID:  i64(7),
		Participant: &ParticipantRef{ID: i64(99), Email: "p@example.com"},
		ID:          i64(123),
		Email:       "flat@example.com",
	}

	id, ok := rec.Identity()
	require.True(t, ok)
	assert.Equal(t, "7", id, "enrollee id outranks nested participant id")

	rec.EnrolleeID = nil
	id, _ = rec.Identity()
	assert.Equal(t, "99", id)

	rec.Participant.ID = nil
	id, _ = rec.Identity()
	assert.Equal(t, "p@example.com", id)

	rec.Participant = nil
	id, _ = rec.Identity()
	assert.Equal(t, "123", id)

	rec.ID = nil
	id, _ = rec.Identity()
	assert.Equal(t, "flat@example.com", id)
}

func TestIdentityEmailNormalized(t *testing.T) {
	rec := Record{Email: "  Ada.Lovelace@Example.COM "}
	id, ok := rec.Identity()
	require.True(t, ok)
	assert.Equal(t, "ada.lovelace@example.com", id)
}

func TestIdentityUnresolvable(t *testing.T) {
	_, ok := Record{FirstName: "Ghost"}.Identity()
	assert.False(t, ok)
}

func TestMergeDirectWinsOverGroup(t *testing.T) {
	// Event with direct attendee Alice (present) and attached group G
	// containing Alice and Bob: exactly two entries, Alice direct.
	alice := i64(1)
	bob := i64(2)

	directs := []Record{{
		EnrolleeID: alice,
		ID:         i64(10),
		FirstName:  "Alice",
		LastName:   "Adams",
		Status:     models.AttendancePresent,
	}}
	groups := []GroupMembers{{
		GroupID: 5,
		Name:    "G",
		Members: []Record{
			{Participant: &ParticipantRef{ID: alice}, FirstName: "Alice", LastName: "Adams"},
			{Participant: &ParticipantRef{ID: bob}, FirstName: "Bob", LastName: "Baker"},
		},
	}}

	merged, dropped := Merge(directs, groups)
	require.Len(t, merged, 2)
	assert.Zero(t, dropped)

	assert.True(t, merged[0].IsDirect)
	assert.Equal(t, models.AttendancePresent, merged[0].Status, "group default never overwrites direct status")
	assert.Empty(t, merged[0].FromGroupName)
	require.NotNil(t, merged[0].AttendeeID)
	assert.Equal(t, int64(10), *merged[0].AttendeeID)

	assert.False(t, merged[1].IsDirect)
	assert.Equal(t, "G", merged[1].FromGroupName)
	assert.Equal(t, models.AttendanceScheduled, merged[1].Status)
}

func TestMergeDeduplicatesAcrossGroups(t *testing.T) {
	member := Record{Participant: &ParticipantRef{ID: i64(3)}, FirstName: "Cara", LastName: "Cole"}
	groups := []GroupMembers{
		{Name: "Morning", Members: []Record{member}},
		{Name: "Evening", Members: []Record{member}},
	}

	merged, _ := Merge(nil, groups)
	require.Len(t, merged, 1)
	assert.Equal(t, "Morning", merged[0].FromGroupName, "first group claim sticks")
}

func TestMergeEveryIdentityOnce(t *testing.T) {
	directs := []Record{
		{EnrolleeID: i64(1), ID: i64(11)},
		{EnrolleeID: i64(2), ID: i64(12)},
		{EnrolleeID: i64(1), ID: i64(13)}, // duplicate direct row
	}
	groups := []GroupMembers{{Name: "A", Members: []Record{
		{Participant: &ParticipantRef{ID: i64(2)}},
		{Participant: &ParticipantRef{ID: i64(4)}},
	}}}

	merged, _ := Merge(directs, groups)
	require.Len(t, merged, 3)

	seen := map[string]bool{}
	for _, entry := range merged {
		assert.False(t, seen[entry.Identity], "identity %s appears twice", entry.Identity)
		seen[entry.Identity] = true
	}
}

func TestMergeDropsUnidentifiable(t *testing.T) {
	directs := []Record{{FirstName: "Ghost"}, {EnrolleeID: i64(9), ID: i64(20)}}
	groups := []GroupMembers{{Name: "G", Members: []Record{{LastName: "Nameless"}}}}

	merged, dropped := Merge(directs, groups)
	assert.Len(t, merged, 1)
	assert.Equal(t, 2, dropped)
}

func TestProjectStatusDefaults(t *testing.T) {
	assert.Equal(t, models.AttendanceScheduled, ProjectStatus(""))
	assert.Equal(t, models.AttendanceScheduled, ProjectStatus("no-show"))
	assert.Equal(t, models.AttendanceLate, ProjectStatus(models.AttendanceLate))
	assert.Equal(t, models.AttendancePresent, ProjectStatus(models.AttendancePresent))
	assert.Equal(t, models.AttendanceAbsent, ProjectStatus(models.AttendanceAbsent))
}

func TestSortByNameFoldsCaseAndAccents(t *testing.T) {
	list := []*Resolved{
		{FirstName: "Zoé", LastName: "Ødegaard"},
		{FirstName: "ana", LastName: "álvarez"},
		{FirstName: "Ben", LastName: "Alvarez"},
	}
	SortByName(list)

	// álvarez folds to alvarez; ana sorts before Ben on first name.
	assert.Equal(t, "ana", list[0].FirstName)
	assert.Equal(t, "Ben", list[1].FirstName)
}

func TestSortByNameStable(t *testing.T) {
	a := &Resolved{Identity: "a", FirstName: "Sam", LastName: "Reed"}
	b := &Resolved{Identity: "b", FirstName: "Sam", LastName: "Reed"}
	list := []*Resolved{a, b}
	SortByName(list)
	assert.Same(t, a, list[0])
	assert.Same(t, b, list[1])
}

func TestMatchesQuery(t *testing.T) {
	entry := &Resolved{FirstName: "Héloïse", LastName: "Dupont"}
	assert.True(t, MatchesQuery(entry, "heloise"))
	assert.True(t, MatchesQuery(entry, "DUPONT"))
	assert.True(t, MatchesQuery(entry, "heloise dupont"))
	assert.False(t, MatchesQuery(entry, "martin"))
	assert.True(t, MatchesQuery(entry, ""))
}
