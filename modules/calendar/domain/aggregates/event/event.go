package event

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
)

type Type string

const (
	TypeAnnualLeave   Type = "annual_leave"
	TypeBirthday      Type = "birthday"
	TypeMilestone     Type = "milestone"
	TypeSickness      Type = "sickness"
	TypeOtherAbsence  Type = "other_absence"
	TypePublicHoliday Type = "public_holiday"
)

func NewType(t string) (Type, error) {
	typ := Type(strings.TrimSpace(t))
	if !typ.IsValid() {
		return "", ErrInvalidType
	}
	return typ, nil
}

func (t Type) IsValid() bool {
	switch t {
	case TypeAnnualLeave, TypeBirthday, TypeMilestone, TypeSickness, TypeOtherAbsence, TypePublicHoliday:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Metadata keys that carry sensitive free text. They must not survive
// redaction for a non-owner, non-privileged viewer.
const (
	MetaReason = "reason"
	MetaNotes  = "notes"
)

// CalendarEvent is one visibility-relevant occurrence for one person. The
// engine is read-only with respect to events: they are created and mutated by
// the external absence workflow, and the redaction methods below always build
// new copies.
type CalendarEvent struct {
	id          uuid.UUID
	orgID       uuid.UUID
	personID    uuid.UUID
	personName  string
	personEmail string
	eventType   Type
	status      Status
	title       string
	period      daterange.Range
	impactDays  decimal.Decimal
	impactHours decimal.Decimal
	metadata    map[string]string
	anonymize   bool
	roleHint    []viewer.Role
}

func Hydrate(
	id uuid.UUID,
	orgID uuid.UUID,
	personID uuid.UUID,
	personName string,
	personEmail string,
	eventType Type,
	status Status,
	title string,
	period daterange.Range,
	impactDays decimal.Decimal,
	impactHours decimal.Decimal,
	metadata map[string]string,
	anonymize bool,
	roleHint []viewer.Role,
) CalendarEvent {
	return CalendarEvent{
		id:          id,
		orgID:       orgID,
		personID:    personID,
		personName:  strings.TrimSpace(personName),
		personEmail: strings.TrimSpace(personEmail),
		eventType:   eventType,
		status:      status,
		title:       strings.TrimSpace(title),
		period:      period,
		impactDays:  impactDays,
		impactHours: impactHours,
		metadata:    cloneMetadata(metadata),
		anonymize:   anonymize,
		roleHint:    append([]viewer.Role(nil), roleHint...),
	}
}

func (e CalendarEvent) ID() uuid.UUID                { return e.id }
func (e CalendarEvent) OrgID() uuid.UUID             { return e.orgID }
func (e CalendarEvent) PersonID() uuid.UUID          { return e.personID }
func (e CalendarEvent) PersonName() string           { return e.personName }
func (e CalendarEvent) PersonEmail() string          { return e.personEmail }
func (e CalendarEvent) Type() Type                   { return e.eventType }
func (e CalendarEvent) Status() Status               { return e.status }
func (e CalendarEvent) Title() string                { return e.title }
func (e CalendarEvent) Period() daterange.Range      { return e.period }
func (e CalendarEvent) ImpactDays() decimal.Decimal  { return e.impactDays }
func (e CalendarEvent) ImpactHours() decimal.Decimal { return e.impactHours }
func (e CalendarEvent) Anonymize() bool              { return e.anonymize }

// Metadata returns a copy of the metadata bag. The internal map is never
// handed out, so callers cannot alias stored events.
func (e CalendarEvent) Metadata() map[string]string {
	return cloneMetadata(e.metadata)
}

func (e CalendarEvent) MetadataValue(key string) (string, bool) {
	v, ok := e.metadata[key]
	return v, ok
}

// RoleHint lists roles the event owner explicitly allowed to see the event
// unmasked, on top of the role rules.
func (e CalendarEvent) RoleHint() []viewer.Role {
	return append([]viewer.Role(nil), e.roleHint...)
}

func (e CalendarEvent) RoleHinted(r viewer.Role) bool {
	for _, hinted := range e.roleHint {
		if hinted == r {
			return true
		}
	}
	return false
}

// WithTitle returns a copy with the title replaced.
func (e CalendarEvent) WithTitle(title string) CalendarEvent {
	e.metadata = cloneMetadata(e.metadata)
	e.title = title
	return e
}

// WithoutMetadataKeys returns a copy whose metadata bag no longer contains
// the given keys. Keys are removed, not blanked, so serialization omits them.
func (e CalendarEvent) WithoutMetadataKeys(keys ...string) CalendarEvent {
	md := cloneMetadata(e.metadata)
	for _, key := range keys {
		delete(md, key)
	}
	e.metadata = md
	return e
}

// WithPerson returns a copy with the person identity replaced. Redaction uses
// it to substitute placeholders, including a zero person id, so nothing
// identifying survives in the returned view.
func (e CalendarEvent) WithPerson(personID uuid.UUID, name, email string) CalendarEvent {
	e.metadata = cloneMetadata(e.metadata)
	e.personID = personID
	e.personName = name
	e.personEmail = email
	return e
}

func cloneMetadata(md map[string]string) map[string]string {
	if md == nil {
		return nil
	}
	out := make(map[string]string, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}
