package daterange

import (
	"time"

	"github.com/peoplekit/teamcal/pkg/serrors"
)

// Day truncates t to a calendar date in UTC. All interval math in the engine
// is done on whole days.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Range is an inclusive calendar-date interval [From, To].
type Range struct {
	From time.Time
	To   time.Time
}

func New(from, to time.Time) (Range, error) {
	from, to = Day(from), Day(to)
	if from.After(to) {
		return Range{}, serrors.NewInvalidRange("range start is after range end")
	}
	return Range{From: from, To: to}, nil
}

// Overlaps reports whether [start, end] intersects the range. The test is
// inclusive overlap, not containment: an event straddling either boundary is
// in.
func (r Range) Overlaps(start, end time.Time) bool {
	return !Day(start).After(r.To) && !Day(end).Before(r.From)
}

// Contains reports whether a single date falls inside the range, bounds
// included.
func (r Range) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.From) && !d.After(r.To)
}
