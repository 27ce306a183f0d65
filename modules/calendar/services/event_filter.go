package services

import (
	"sort"

	"github.com/google/uuid"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/event"
)

// FilterEvents shapes an already-fetched event list against the resolved
// person set, an optional explicit id list and an optional type list. It is a
// pure query-shaping step with no side effects.
//
// Only approved events survive, whatever the scope: the store query restricts
// to approved as well, and this keeps the invariant local. An explicit id
// list is intersected with the allowed set, never substituted for it.
func FilterEvents(
	events []event.CalendarEvent,
	allowed PersonSet,
	requestedTypes []event.Type,
	explicitPersonIDs []uuid.UUID,
) []event.CalendarEvent {
	scope := allowed.Narrow(explicitPersonIDs)

	var typeFilter map[event.Type]struct{}
	if len(requestedTypes) > 0 {
		typeFilter = make(map[event.Type]struct{}, len(requestedTypes))
		for _, t := range requestedTypes {
			typeFilter[t] = struct{}{}
		}
	}

	out := make([]event.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.Status() != event.StatusApproved {
			continue
		}
		if !scope.Contains(e.PersonID()) {
			continue
		}
		if typeFilter != nil {
			if _, ok := typeFilter[e.Type()]; !ok {
				continue
			}
		}
		out = append(out, e)
	}

	// Ascending by start date; ties broken by event id for determinism.
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Period(), out[j].Period()
		if !pi.From.Equal(pj.From) {
			return pi.From.Before(pj.From)
		}
		return out[i].ID().String() < out[j].ID().String()
	})

	return out
}
