package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/balance"
	"github.com/peoplekit/teamcal/pkg/composables"
)

type PgBalanceRepository struct{}

func NewBalanceRepository() balance.Repository {
	return &PgBalanceRepository{}
}

func (r *PgBalanceRepository) FindValid(ctx context.Context, personID uuid.UUID) ([]balance.Snapshot, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT
	person_id,
	plan_type,
	period_start,
	entitlement_days::text,
	used_days::text,
	remaining_days::text,
	entitlement_hours::text,
	used_hours::text,
	remaining_hours::text,
	episodes,
	rolling_window_days,
	alert_threshold_days::text,
	accrual_rate_days::text,
	last_calculated_at,
	is_valid
FROM calendar_balance_snapshots
WHERE person_id = $1
	AND is_valid
ORDER BY plan_type ASC, period_start ASC
`, pgUUID(personID))
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to query balance snapshots")
	}
	defer rows.Close()

	out := make([]balance.Snapshot, 0, 4)
	for rows.Next() {
		var row snapshotRow
		if err := rows.Scan(
			&row.PersonID,
			&row.PlanType,
			&row.PeriodStart,
			&row.EntitlementDays,
			&row.UsedDays,
			&row.RemainingDays,
			&row.EntitlementHours,
			&row.UsedHours,
			&row.RemainingHours,
			&row.Episodes,
			&row.RollingWindowDays,
			&row.AlertThresholdDays,
			&row.AccrualRateDays,
			&row.LastCalculatedAt,
			&row.IsValid,
		); err != nil {
			return nil, gerrors.Wrap(err, "failed to scan balance snapshot")
		}
		snap, err := toDomainSnapshot(row)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

// RequestRecompute appends a pending row for the external recomputation job
// to pick up. It is a single insert; it never waits for the job.
func (r *PgBalanceRepository) RequestRecompute(ctx context.Context, personID uuid.UUID, planType balance.PlanType) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO calendar_recompute_requests (id, person_id, plan_type, requested_at)
VALUES ($1, $2, $3, now())
`, pgUUID(uuid.New()), pgUUID(personID), string(planType))
	if err != nil {
		return gerrors.Wrap(err, "failed to record recompute request")
	}
	return nil
}

type snapshotRow struct {
	PersonID           pgtype.UUID
	PlanType           string
	PeriodStart        pgtype.Date
	EntitlementDays    string
	UsedDays           string
	RemainingDays      string
	EntitlementHours   string
	UsedHours          string
	RemainingHours     string
	Episodes           int
	RollingWindowDays  int
	AlertThresholdDays pgtype.Text
	AccrualRateDays    pgtype.Text
	LastCalculatedAt   pgtype.Timestamptz
	IsValid            bool
}
