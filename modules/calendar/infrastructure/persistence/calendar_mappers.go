package persistence

import (
	gerrors "github.com/go-faster/errors"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/balance"
	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/event"
	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/holiday"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
)

func toDomainEvent(row eventRow) (event.CalendarEvent, error) {
	eventType := event.Type(row.EventType)
	if !eventType.IsValid() {
		return event.CalendarEvent{}, gerrors.Errorf("unknown calendar event type %q", row.EventType)
	}
	status := event.Status(row.Status)
	if !status.IsValid() {
		return event.CalendarEvent{}, gerrors.Errorf("unknown calendar event status %q", row.Status)
	}

	period, err := daterange.New(row.StartDate.Time, row.EndDate.Time)
	if err != nil {
		return event.CalendarEvent{}, err
	}

	impactDays, err := decimalFromText(row.ImpactDays)
	if err != nil {
		return event.CalendarEvent{}, err
	}
	impactHours, err := decimalFromText(row.ImpactHours)
	if err != nil {
		return event.CalendarEvent{}, err
	}

	roleHint := make([]viewer.Role, 0, len(row.RoleHint))
	for _, raw := range row.RoleHint {
		role, err := viewer.NewRole(raw)
		if err != nil {
			// An unknown hinted role grants nothing.
			continue
		}
		roleHint = append(roleHint, role)
	}

	return event.Hydrate(
		uuidFromPg(row.ID),
		uuidFromPg(row.OrgID),
		uuidFromPg(row.PersonID),
		row.PersonName,
		row.PersonEmail,
		eventType,
		status,
		row.Title,
		period,
		impactDays,
		impactHours,
		row.Metadata,
		row.Anonymize,
		roleHint,
	), nil
}

func toDomainHoliday(row holidayRow) holiday.Record {
	return holiday.Hydrate(
		uuidFromPg(row.ID),
		row.Region,
		row.Date.Time,
		row.Name,
		row.HalfDay,
		row.Active,
		row.Recurrence,
	)
}

func toDomainSnapshot(row snapshotRow) (balance.Snapshot, error) {
	planType := balance.PlanType(row.PlanType)
	if !planType.IsValid() {
		return balance.Snapshot{}, gerrors.Errorf("unknown entitlement plan type %q", row.PlanType)
	}

	entitlementDays, err := decimalFromText(row.EntitlementDays)
	if err != nil {
		return balance.Snapshot{}, err
	}
	usedDays, err := decimalFromText(row.UsedDays)
	if err != nil {
		return balance.Snapshot{}, err
	}
	remainingDays, err := decimalFromText(row.RemainingDays)
	if err != nil {
		return balance.Snapshot{}, err
	}
	entitlementHours, err := decimalFromText(row.EntitlementHours)
	if err != nil {
		return balance.Snapshot{}, err
	}
	usedHours, err := decimalFromText(row.UsedHours)
	if err != nil {
		return balance.Snapshot{}, err
	}
	remainingHours, err := decimalFromText(row.RemainingHours)
	if err != nil {
		return balance.Snapshot{}, err
	}
	alertThreshold, err := nullDecimalFromText(row.AlertThresholdDays)
	if err != nil {
		return balance.Snapshot{}, err
	}
	accrualRate, err := nullDecimalFromText(row.AccrualRateDays)
	if err != nil {
		return balance.Snapshot{}, err
	}

	return balance.Hydrate(
		uuidFromPg(row.PersonID),
		planType,
		row.PeriodStart.Time,
		entitlementDays, usedDays, remainingDays,
		entitlementHours, usedHours, remainingHours,
		row.Episodes,
		row.RollingWindowDays,
		alertThreshold,
		accrualRate,
		row.LastCalculatedAt.Time,
		row.IsValid,
	), nil
}
