package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/event"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
)

var testOrgID = uuid.MustParse("00000000-0000-0000-0000-0000000000f0")

func mustRange(t *testing.T, from, to string) daterange.Range {
	t.Helper()
	fromDate, err := time.Parse("2006-01-02", from)
	require.NoError(t, err)
	toDate, err := time.Parse("2006-01-02", to)
	require.NoError(t, err)
	r, err := daterange.New(fromDate, toDate)
	require.NoError(t, err)
	return r
}

type eventSpec struct {
	id        string
	personID  uuid.UUID
	eventType event.Type
	status    event.Status
	from      string
	to        string
	title     string
	metadata  map[string]string
	anonymize bool
	roleHint  []viewer.Role
}

func makeEvent(t *testing.T, spec eventSpec) event.CalendarEvent {
	t.Helper()
	id := spec.id
	if id == "" {
		id = uuid.NewString()
	}
	title := spec.title
	if title == "" {
		title = "Time off"
	}
	return event.Hydrate(
		uuid.MustParse(id),
		testOrgID,
		spec.personID,
		"Jordan Reed",
		"jordan@example.com",
		spec.eventType,
		spec.status,
		title,
		mustRange(t, spec.from, spec.to),
		decimal.NewFromInt(1),
		decimal.NewFromInt(8),
		spec.metadata,
		spec.anonymize,
		spec.roleHint,
	)
}

func TestFilterEvents_OnlyApprovedSurvive(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	events := []event.CalendarEvent{
		makeEvent(t, eventSpec{personID: person, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
		makeEvent(t, eventSpec{personID: person, eventType: event.TypeAnnualLeave, status: event.StatusPending, from: "2026-03-09", to: "2026-03-13"}),
		makeEvent(t, eventSpec{personID: person, eventType: event.TypeAnnualLeave, status: event.StatusRejected, from: "2026-03-16", to: "2026-03-20"}),
		makeEvent(t, eventSpec{personID: person, eventType: event.TypeAnnualLeave, status: event.StatusCancelled, from: "2026-03-23", to: "2026-03-27"}),
	}

	out := FilterEvents(events, NewPersonSet(person), nil, nil)
	require.Len(t, out, 1)
	require.Equal(t, event.StatusApproved, out[0].Status())
}

func TestFilterEvents_ScopeMembershipRequired(t *testing.T) {
	inScope := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	outOfScope := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	events := []event.CalendarEvent{
		makeEvent(t, eventSpec{personID: inScope, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
		makeEvent(t, eventSpec{personID: outOfScope, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
	}

	out := FilterEvents(events, NewPersonSet(inScope), nil, nil)
	require.Len(t, out, 1)
	require.Equal(t, inScope, out[0].PersonID())
}

func TestFilterEvents_ExplicitIDsNarrowNeverWiden(t *testing.T) {
	allowedOne := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	allowedTwo := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	outsider := uuid.MustParse("00000000-0000-0000-0000-000000000003")
	events := []event.CalendarEvent{
		makeEvent(t, eventSpec{personID: allowedOne, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
		makeEvent(t, eventSpec{personID: allowedTwo, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
		makeEvent(t, eventSpec{personID: outsider, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
	}

	// Asking for one allowed person and one outsider returns only the
	// allowed one; the outsider id is dropped, not granted.
	out := FilterEvents(events, NewPersonSet(allowedOne, allowedTwo), nil, []uuid.UUID{allowedOne, outsider})
	require.Len(t, out, 1)
	require.Equal(t, allowedOne, out[0].PersonID())
}

func TestFilterEvents_TypeFilter(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	events := []event.CalendarEvent{
		makeEvent(t, eventSpec{personID: person, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
		makeEvent(t, eventSpec{personID: person, eventType: event.TypeBirthday, status: event.StatusApproved, from: "2026-03-04", to: "2026-03-04"}),
		makeEvent(t, eventSpec{personID: person, eventType: event.TypeSickness, status: event.StatusApproved, from: "2026-03-05", to: "2026-03-05"}),
	}

	out := FilterEvents(events, NewPersonSet(person), []event.Type{event.TypeBirthday, event.TypeSickness}, nil)
	require.Len(t, out, 2)
	require.Equal(t, event.TypeBirthday, out[0].Type())
	require.Equal(t, event.TypeSickness, out[1].Type())
}

func TestFilterEvents_OrderedByStartDateThenID(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	events := []event.CalendarEvent{
		makeEvent(t, eventSpec{id: "00000000-0000-0000-0000-0000000000b2", personID: person, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-03"}),
		makeEvent(t, eventSpec{id: "00000000-0000-0000-0000-0000000000a1", personID: person, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-09", to: "2026-03-10"}),
		makeEvent(t, eventSpec{id: "00000000-0000-0000-0000-0000000000a0", personID: person, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
	}

	out := FilterEvents(events, NewPersonSet(person), nil, nil)
	require.Len(t, out, 3)
	require.Equal(t, "00000000-0000-0000-0000-0000000000a0", out[0].ID().String())
	require.Equal(t, "00000000-0000-0000-0000-0000000000b2", out[1].ID().String())
	require.Equal(t, "00000000-0000-0000-0000-0000000000a1", out[2].ID().String())
}
