package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/event"
	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/holiday"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
	"github.com/peoplekit/teamcal/pkg/composables"
	"github.com/peoplekit/teamcal/pkg/serrors"
)

// EventQuery is one inbound "events in range X for scope S" request. The
// viewer is taken from the request context, not the query, so a caller cannot
// impersonate by parameter.
type EventQuery struct {
	OrgID             uuid.UUID
	Range             daterange.Range
	Scope             Scope
	Types             []event.Type
	ExplicitPersonIDs []uuid.UUID
	Region            string
}

// CalendarFeed is the combined result: redacted events plus the holiday
// overlay for the requested region.
type CalendarFeed struct {
	Events   []event.CalendarEvent
	Holidays []holiday.Record
}

// VisibilityService orchestrates the read path: resolve the allowed person
// set, shape the event query, redact for the viewer, and overlay holidays.
// Every step is a synchronous bounded read with no shared mutable state.
type VisibilityService struct {
	events   event.Repository
	resolver *ScopeResolver
	holidays *HolidayService
}

func NewVisibilityService(events event.Repository, resolver *ScopeResolver, holidays *HolidayService) *VisibilityService {
	return &VisibilityService{
		events:   events,
		resolver: resolver,
		holidays: holidays,
	}
}

func (s *VisibilityService) Events(ctx context.Context, q EventQuery) (CalendarFeed, error) {
	v, err := composables.UseViewer(ctx)
	if err != nil {
		return CalendarFeed{}, serrors.NewPermissionDenied("no viewer identity")
	}

	if q.OrgID == uuid.Nil || q.OrgID != v.OrgID {
		return CalendarFeed{}, serrors.NewPermissionDenied("not authorized for this organization")
	}

	if q.Range.From.IsZero() || q.Range.To.IsZero() || q.Range.From.After(q.Range.To) {
		return CalendarFeed{}, serrors.NewInvalidRange("malformed date range")
	}

	allowed, err := s.resolver.AllowedPersons(ctx, q.Scope, v)
	if err != nil {
		return CalendarFeed{}, err
	}

	items, err := s.events.FindApproved(ctx, q.OrgID, q.Range)
	if err != nil {
		return CalendarFeed{}, err
	}

	items = FilterEvents(items, allowed, q.Types, q.ExplicitPersonIDs)
	items = Redact(items, v)

	holidays, err := s.holidays.InRange(ctx, q.Region, q.Range)
	if err != nil {
		return CalendarFeed{}, err
	}

	return CalendarFeed{
		Events:   items,
		Holidays: holidays,
	}, nil
}
