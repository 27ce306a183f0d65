package event

import (
	"context"

	"github.com/google/uuid"
	gerrors "github.com/go-faster/errors"

	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
)

var (
	ErrNotFound    = gerrors.New("calendar event not found")
	ErrInvalidType = gerrors.New("invalid calendar event type")
)

// Repository is the consumed event-store port. The engine only ever reads
// approved events; lifecycle writes belong to the external absence workflow.
type Repository interface {
	// FindApproved returns approved events for the organization whose period
	// overlaps r, ordered by (start date, event id).
	FindApproved(ctx context.Context, orgID uuid.UUID, r daterange.Range) ([]CalendarEvent, error)
}
