package holiday

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
)

// Record is one jurisdiction-scoped non-working day. Holidays are
// organization-public: no role gating applies to them anywhere in the engine.
// Uniqueness is (region, date) for active records.
type Record struct {
	id         uuid.UUID
	region     string
	date       time.Time
	name       string
	halfDay    bool
	active     bool
	recurrence string
}

func Hydrate(
	id uuid.UUID,
	region string,
	date time.Time,
	name string,
	halfDay bool,
	active bool,
	recurrence string,
) Record {
	return Record{
		id:         id,
		region:     normalizeRegion(region),
		date:       daterange.Day(date),
		name:       strings.TrimSpace(name),
		halfDay:    halfDay,
		active:     active,
		recurrence: strings.TrimSpace(recurrence),
	}
}

func (r Record) ID() uuid.UUID   { return r.id }
func (r Record) Region() string  { return r.region }
func (r Record) Date() time.Time { return r.date }
func (r Record) Name() string    { return r.name }
func (r Record) HalfDay() bool   { return r.halfDay }
func (r Record) Active() bool    { return r.active }

// Recurrence is an optional RFC 5545 RRULE expression. Empty means the record
// is a single concrete date.
func (r Record) Recurrence() string { return r.recurrence }

func (r Record) IsRecurring() bool { return r.recurrence != "" }

// OnDate returns a copy of the record pinned to a concrete occurrence date.
// Used when expanding recurring holidays into a requested range.
func (r Record) OnDate(date time.Time) Record {
	r.date = daterange.Day(date)
	return r
}

func normalizeRegion(region string) string {
	return strings.ToLower(strings.TrimSpace(region))
}

// NormalizeRegion canonicalizes a caller-supplied region string the same way
// stored records are keyed.
func NormalizeRegion(region string) string {
	return normalizeRegion(region)
}
