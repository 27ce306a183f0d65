package holiday

import (
	"context"

	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
)

// Repository is the consumed holiday-store port. Records are administered
// outside the engine; this is a read-only view.
type Repository interface {
	// FindActive returns active records for the region that either fall
	// inside r or carry a recurrence rule (recurring records are expanded by
	// the service, so their stored seed date may lie outside r).
	FindActive(ctx context.Context, region string, r daterange.Range) ([]Record, error)
}
