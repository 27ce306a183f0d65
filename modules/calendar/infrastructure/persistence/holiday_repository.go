package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/holiday"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
	"github.com/peoplekit/teamcal/pkg/composables"
)

type PgHolidayRepository struct{}

func NewHolidayRepository() holiday.Repository {
	return &PgHolidayRepository{}
}

func (r *PgHolidayRepository) FindActive(ctx context.Context, region string, rng daterange.Range) ([]holiday.Record, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	// Recurring records are fetched regardless of their stored seed date; the
	// service expands them into the requested range.
	rows, err := tx.Query(ctx, `
SELECT
	id,
	region,
	holiday_date,
	name,
	half_day,
	is_active,
	recurrence
FROM calendar_holidays
WHERE region = $1
	AND is_active
	AND (holiday_date BETWEEN $2 AND $3 OR recurrence <> '')
ORDER BY holiday_date ASC
`, holiday.NormalizeRegion(region), rng.From, rng.To)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to query holidays")
	}
	defer rows.Close()

	out := make([]holiday.Record, 0, 16)
	for rows.Next() {
		var row holidayRow
		if err := rows.Scan(
			&row.ID,
			&row.Region,
			&row.Date,
			&row.Name,
			&row.HalfDay,
			&row.Active,
			&row.Recurrence,
		); err != nil {
			return nil, gerrors.Wrap(err, "failed to scan holiday")
		}
		out = append(out, toDomainHoliday(row))
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

type holidayRow struct {
	ID         pgtype.UUID
	Region     string
	Date       pgtype.Date
	Name       string
	HalfDay    bool
	Active     bool
	Recurrence string
}
