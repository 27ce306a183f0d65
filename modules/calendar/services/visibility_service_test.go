package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/event"
	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/holiday"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
	"github.com/peoplekit/teamcal/pkg/serrors"
)

type eventRepoStub struct {
	findApproved func(ctx context.Context, orgID uuid.UUID, r daterange.Range) ([]event.CalendarEvent, error)
}

func (s *eventRepoStub) FindApproved(ctx context.Context, orgID uuid.UUID, r daterange.Range) ([]event.CalendarEvent, error) {
	return s.findApproved(ctx, orgID, r)
}

func emptyHolidayService() *HolidayService {
	return NewHolidayService(&holidayRepoStub{
		findActive: func(_ context.Context, _ string, _ daterange.Range) ([]holiday.Record, error) {
			return nil, nil
		},
	}, "default")
}

func newVisibilityFixture(stub *hierarchyStub, events []event.CalendarEvent) *VisibilityService {
	repo := &eventRepoStub{
		findApproved: func(_ context.Context, _ uuid.UUID, _ daterange.Range) ([]event.CalendarEvent, error) {
			return events, nil
		},
	}
	return NewVisibilityService(repo, NewScopeResolver(stub, time.Second), emptyHolidayService())
}

func TestVisibilityService_NoViewerIsPermissionDenied(t *testing.T) {
	svc := newVisibilityFixture(&hierarchyStub{}, nil)

	_, err := svc.Events(context.Background(), EventQuery{
		OrgID: testOrgID,
		Range: mustRange(t, "2026-03-01", "2026-03-31"),
		Scope: ScopeSelf,
	})
	require.True(t, serrors.IsPermissionDenied(err))
}

func TestVisibilityService_ForeignOrganizationIsPermissionDenied(t *testing.T) {
	svc := newVisibilityFixture(&hierarchyStub{}, nil)
	v := viewer.Viewer{ID: uuid.New(), Role: viewer.RoleAdmin, OrgID: testOrgID}

	_, err := svc.Events(viewerContext(v), EventQuery{
		OrgID: uuid.MustParse("00000000-0000-0000-0000-0000000000ee"),
		Range: mustRange(t, "2026-03-01", "2026-03-31"),
		Scope: ScopeOrganization,
	})
	require.True(t, serrors.IsPermissionDenied(err))
}

func TestVisibilityService_ZeroRangeIsInvalid(t *testing.T) {
	svc := newVisibilityFixture(&hierarchyStub{}, nil)
	v := viewer.Viewer{ID: uuid.New(), Role: viewer.RoleEmployee, OrgID: testOrgID}

	_, err := svc.Events(viewerContext(v), EventQuery{
		OrgID: testOrgID,
		Scope: ScopeSelf,
	})
	require.True(t, serrors.IsInvalidRange(err))
}

func TestVisibilityService_SelfScopeSeesOnlyOwnEvents(t *testing.T) {
	self := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	colleague := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	events := []event.CalendarEvent{
		makeEvent(t, eventSpec{personID: self, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
		makeEvent(t, eventSpec{personID: colleague, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
	}
	svc := newVisibilityFixture(&hierarchyStub{}, events)
	v := viewer.Viewer{ID: self, Role: viewer.RoleEmployee, OrgID: testOrgID}

	feed, err := svc.Events(viewerContext(v), EventQuery{
		OrgID: testOrgID,
		Range: mustRange(t, "2026-03-01", "2026-03-31"),
		Scope: ScopeSelf,
	})
	require.NoError(t, err)
	require.Len(t, feed.Events, 1)
	require.Equal(t, self, feed.Events[0].PersonID())
}

func TestVisibilityService_TeamScopeRedactsSicknessForManager(t *testing.T) {
	manager := managerID
	report := reportOne
	events := []event.CalendarEvent{
		makeEvent(t, eventSpec{
			personID:  report,
			eventType: event.TypeSickness,
			status:    event.StatusApproved,
			from:      "2026-03-02",
			to:        "2026-03-04",
			title:     "Migraine treatment",
			metadata:  map[string]string{event.MetaReason: "migraine"},
		}),
	}
	stub := &hierarchyStub{
		team: func(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{report}, nil
		},
	}
	svc := newVisibilityFixture(stub, events)
	v := viewer.Viewer{ID: manager, Role: viewer.RoleManager, OrgID: testOrgID}

	feed, err := svc.Events(viewerContext(v), EventQuery{
		OrgID: testOrgID,
		Range: mustRange(t, "2026-03-01", "2026-03-31"),
		Scope: ScopeTeam,
	})
	require.NoError(t, err)
	require.Len(t, feed.Events, 1)
	require.Equal(t, SickLeaveTitle, feed.Events[0].Title())
	_, hasReason := feed.Events[0].MetadataValue(event.MetaReason)
	require.False(t, hasReason)
}

func TestVisibilityService_ExplicitIDsIntersectResolvedScope(t *testing.T) {
	manager := managerID
	events := []event.CalendarEvent{
		makeEvent(t, eventSpec{personID: reportOne, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
		makeEvent(t, eventSpec{personID: reportTwo, eventType: event.TypeAnnualLeave, status: event.StatusApproved, from: "2026-03-02", to: "2026-03-06"}),
	}
	outsider := uuid.MustParse("00000000-0000-0000-0000-0000000000ff")
	stub := &hierarchyStub{
		directReports: func(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{reportOne, reportTwo}, nil
		},
	}
	svc := newVisibilityFixture(stub, events)
	v := viewer.Viewer{ID: manager, Role: viewer.RoleManager, OrgID: testOrgID}

	feed, err := svc.Events(viewerContext(v), EventQuery{
		OrgID:             testOrgID,
		Range:             mustRange(t, "2026-03-01", "2026-03-31"),
		Scope:             ScopeDirectReports,
		ExplicitPersonIDs: []uuid.UUID{reportOne, outsider},
	})
	require.NoError(t, err)
	require.Len(t, feed.Events, 1)
	require.Equal(t, reportOne, feed.Events[0].PersonID())
}

func TestVisibilityService_HierarchyOutageSurfacesBeforeEvents(t *testing.T) {
	stub := &hierarchyStub{
		directReports: func(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
			return nil, errors.New("hierarchy service down")
		},
	}
	svc := newVisibilityFixture(stub, nil)
	v := viewer.Viewer{ID: managerID, Role: viewer.RoleManager, OrgID: testOrgID}

	_, err := svc.Events(viewerContext(v), EventQuery{
		OrgID: testOrgID,
		Range: mustRange(t, "2026-03-01", "2026-03-31"),
		Scope: ScopeDirectReports,
	})
	require.True(t, serrors.IsDependencyUnavailable(err))
}

func TestVisibilityService_FeedIncludesHolidayOverlay(t *testing.T) {
	self := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	holidayRepo := &holidayRepoStub{
		findActive: func(_ context.Context, region string, _ daterange.Range) ([]holiday.Record, error) {
			require.Equal(t, "de-be", region)
			return []holiday.Record{concreteHoliday(t, "de-be", "2026-03-08", "Women's Day")}, nil
		},
	}
	repo := &eventRepoStub{
		findApproved: func(_ context.Context, _ uuid.UUID, _ daterange.Range) ([]event.CalendarEvent, error) {
			return nil, nil
		},
	}
	svc := NewVisibilityService(repo, NewScopeResolver(&hierarchyStub{}, time.Second), NewHolidayService(holidayRepo, "default"))
	v := viewer.Viewer{ID: self, Role: viewer.RoleEmployee, OrgID: testOrgID}

	feed, err := svc.Events(viewerContext(v), EventQuery{
		OrgID:  testOrgID,
		Range:  mustRange(t, "2026-03-01", "2026-03-31"),
		Scope:  ScopeSelf,
		Region: "DE-BE",
	})
	require.NoError(t, err)
	require.Empty(t, feed.Events)
	require.Len(t, feed.Holidays, 1)
	require.Equal(t, "Women's Day", feed.Holidays[0].Name())
}
