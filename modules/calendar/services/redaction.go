package services

import (
	"github.com/google/uuid"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/event"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
	"github.com/peoplekit/teamcal/pkg/metrics"
)

// Generic labels substituted during redaction.
const (
	SickLeaveTitle       = "Sick Leave"
	AnonymizedTitle      = "Colleague Unavailable"
	AnonymizedPersonName = "A colleague"
)

// Redact post-processes visible events for the viewer, rewriting or
// stripping fields per role and per-event flags. It returns new, non-aliased
// copies; the input events are never mutated.
//
// The rules are cumulative and idempotent: redacting an already-redacted
// event is a no-op.
func Redact(events []event.CalendarEvent, v viewer.Viewer) []event.CalendarEvent {
	out := make([]event.CalendarEvent, 0, len(events))
	for _, e := range events {
		redacted, changed := redactOne(e, v)
		if changed {
			metrics.EventsRedacted.Inc()
		}
		out = append(out, redacted)
	}
	return out
}

func redactOne(e event.CalendarEvent, v viewer.Viewer) (event.CalendarEvent, bool) {
	// Owners always see their own data in full.
	if v.Owns(e.PersonID()) {
		return e, false
	}

	changed := false

	// Sensitive free text (reason, notes) never reaches a non-owner viewer
	// below the HR tier. Keys are removed outright so serialization omits
	// them; for sickness the title is replaced with a generic label as well.
	if !hrTier(v.Role) {
		if _, hasReason := e.MetadataValue(event.MetaReason); hasReason {
			changed = true
		}
		if _, hasNotes := e.MetadataValue(event.MetaNotes); hasNotes {
			changed = true
		}
		e = e.WithoutMetadataKeys(event.MetaReason, event.MetaNotes)

		if e.Type() == event.TypeSickness && e.Title() != SickLeaveTitle {
			e = e.WithTitle(SickLeaveTitle)
			changed = true
		}
	}

	// Anonymization masks who is away, not just why. Managerial roles and
	// roles the owner explicitly allowed still see the identity.
	if e.Anonymize() && !managerialTier(v.Role) && !e.RoleHinted(v.Role) {
		if e.Title() != AnonymizedTitle {
			e = e.WithTitle(AnonymizedTitle)
			changed = true
		}
		if e.PersonID() != uuid.Nil || e.PersonName() != AnonymizedPersonName {
			e = e.WithPerson(uuid.Nil, AnonymizedPersonName, "")
			changed = true
		}
	}

	return e, changed
}

func hrTier(role viewer.Role) bool {
	switch role {
	case viewer.RoleHRManager, viewer.RoleAdmin:
		return true
	case viewer.RoleEmployee, viewer.RoleManager:
		return false
	}
	return false
}

func managerialTier(role viewer.Role) bool {
	switch role {
	case viewer.RoleManager, viewer.RoleHRManager, viewer.RoleAdmin:
		return true
	case viewer.RoleEmployee:
		return false
	}
	return false
}
