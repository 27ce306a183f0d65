package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/balance"
	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/event"
	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/holiday"
	"github.com/peoplekit/teamcal/modules/calendar/presentation/viewmodels"
)

const dateLayout = "2006-01-02"

func EventToViewModel(e event.CalendarEvent) viewmodels.RedactedEvent {
	vm := viewmodels.RedactedEvent{
		ID:          e.ID().String(),
		PersonName:  e.PersonName(),
		PersonEmail: e.PersonEmail(),
		Type:        string(e.Type()),
		Title:       e.Title(),
		StartDate:   e.Period().From.Format(dateLayout),
		EndDate:     e.Period().To.Format(dateLayout),
		Metadata:    e.Metadata(),
		Anonymized:  e.Anonymize(),
	}
	// A zero person id means the identity was redacted away; the field is
	// omitted rather than serialized as the zero uuid.
	if e.PersonID() != uuid.Nil {
		vm.PersonID = e.PersonID().String()
	}
	if !e.ImpactDays().IsZero() {
		vm.ImpactDays = e.ImpactDays().String()
	}
	if !e.ImpactHours().IsZero() {
		vm.ImpactHours = e.ImpactHours().String()
	}
	return vm
}

func HolidayToViewModel(r holiday.Record) viewmodels.HolidayDay {
	return viewmodels.HolidayDay{
		Region:  r.Region(),
		Date:    r.Date().Format(dateLayout),
		Name:    r.Name(),
		HalfDay: r.HalfDay(),
	}
}

func BalanceToViewModel(v balance.View) viewmodels.BalanceView {
	snap := v.Snapshot
	vm := viewmodels.BalanceView{
		PersonID:          snap.PersonID().String(),
		PlanType:          string(snap.PlanType()),
		PeriodStart:       snap.PeriodStart().Format(dateLayout),
		EntitlementDays:   snap.EntitlementDays().String(),
		UsedDays:          snap.UsedDays().String(),
		RemainingDays:     snap.RemainingDays().String(),
		EntitlementHours:  snap.EntitlementHours().String(),
		UsedHours:         snap.UsedHours().String(),
		RemainingHours:    snap.RemainingHours().String(),
		Episodes:          snap.Episodes(),
		RollingWindowDays: snap.RollingWindowDays(),
		LastCalculatedAt:  snap.LastCalculatedAt().UTC().Format(time.RFC3339),
		IsStale:           v.IsStale,
		AlertTriggered:    v.AlertTriggered,
	}
	if snap.AlertThresholdDays().Valid {
		vm.AlertThresholdDays = snap.AlertThresholdDays().Decimal.String()
	}
	return vm
}
