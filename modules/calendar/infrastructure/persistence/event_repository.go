package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/event"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
	"github.com/peoplekit/teamcal/pkg/composables"
)

type PgEventRepository struct{}

func NewEventRepository() event.Repository {
	return &PgEventRepository{}
}

func (r *PgEventRepository) FindApproved(ctx context.Context, orgID uuid.UUID, rng daterange.Range) ([]event.CalendarEvent, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT
	id,
	org_id,
	person_id,
	person_name,
	person_email,
	event_type,
	status,
	title,
	start_date,
	end_date,
	impact_days::text,
	impact_hours::text,
	metadata,
	anonymize,
	role_hint
FROM calendar_events
WHERE org_id = $1
	AND status = 'approved'
	AND start_date <= $3
	AND end_date >= $2
ORDER BY start_date ASC, id ASC
`, pgUUID(orgID), rng.From, rng.To)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to query calendar events")
	}
	defer rows.Close()

	out := make([]event.CalendarEvent, 0, 32)
	for rows.Next() {
		var row eventRow
		if err := rows.Scan(
			&row.ID,
			&row.OrgID,
			&row.PersonID,
			&row.PersonName,
			&row.PersonEmail,
			&row.EventType,
			&row.Status,
			&row.Title,
			&row.StartDate,
			&row.EndDate,
			&row.ImpactDays,
			&row.ImpactHours,
			&row.Metadata,
			&row.Anonymize,
			&row.RoleHint,
		); err != nil {
			return nil, gerrors.Wrap(err, "failed to scan calendar event")
		}
		entity, err := toDomainEvent(row)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

type eventRow struct {
	ID          pgtype.UUID
	OrgID       pgtype.UUID
	PersonID    pgtype.UUID
	PersonName  string
	PersonEmail string
	EventType   string
	Status      string
	Title       string
	StartDate   pgtype.Date
	EndDate     pgtype.Date
	ImpactDays  string
	ImpactHours string
	Metadata    map[string]string
	Anonymize   bool
	RoleHint    []string
}
