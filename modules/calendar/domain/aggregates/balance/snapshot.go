package balance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanType is an entitlement plan category, each tracked with its own
// balance.
type PlanType string

const (
	PlanAnnualLeave  PlanType = "annual_leave"
	PlanSickness     PlanType = "sickness"
	PlanOtherAbsence PlanType = "other_absence"
)

func NewPlanType(t string) (PlanType, error) {
	plan := PlanType(strings.TrimSpace(t))
	if !plan.IsValid() {
		return "", ErrInvalidPlanType
	}
	return plan, nil
}

func (t PlanType) IsValid() bool {
	switch t {
	case PlanAnnualLeave, PlanSickness, PlanOtherAbsence:
		return true
	}
	return false
}

// Snapshot is one precomputed balance row per (person, plan type, period
// start). It is written by the external recomputation job; the engine only
// reads it, evaluates freshness, and flags.
type Snapshot struct {
	personID    uuid.UUID
	planType    PlanType
	periodStart time.Time

	entitlementDays decimal.Decimal
	usedDays        decimal.Decimal
	remainingDays   decimal.Decimal

	entitlementHours decimal.Decimal
	usedHours        decimal.Decimal
	remainingHours   decimal.Decimal

	// Episode counter for sickness-style plans: number of distinct absence
	// episodes in the period, not a quantity of days.
	episodes int

	// Rolling window length in days; zero means a fixed calendar period.
	rollingWindowDays int

	alertThresholdDays decimal.NullDecimal
	accrualRateDays    decimal.NullDecimal

	lastCalculatedAt time.Time
	valid            bool
}

func Hydrate(
	personID uuid.UUID,
	planType PlanType,
	periodStart time.Time,
	entitlementDays, usedDays, remainingDays decimal.Decimal,
	entitlementHours, usedHours, remainingHours decimal.Decimal,
	episodes int,
	rollingWindowDays int,
	alertThresholdDays decimal.NullDecimal,
	accrualRateDays decimal.NullDecimal,
	lastCalculatedAt time.Time,
	valid bool,
) Snapshot {
	return Snapshot{
		personID:           personID,
		planType:           planType,
		periodStart:        periodStart,
		entitlementDays:    entitlementDays,
		usedDays:           usedDays,
		remainingDays:      remainingDays,
		entitlementHours:   entitlementHours,
		usedHours:          usedHours,
		remainingHours:     remainingHours,
		episodes:           episodes,
		rollingWindowDays:  rollingWindowDays,
		alertThresholdDays: alertThresholdDays,
		accrualRateDays:    accrualRateDays,
		lastCalculatedAt:   lastCalculatedAt,
		valid:              valid,
	}
}

func (s Snapshot) PersonID() uuid.UUID                  { return s.personID }
func (s Snapshot) PlanType() PlanType                   { return s.planType }
func (s Snapshot) PeriodStart() time.Time               { return s.periodStart }
func (s Snapshot) EntitlementDays() decimal.Decimal     { return s.entitlementDays }
func (s Snapshot) UsedDays() decimal.Decimal            { return s.usedDays }
func (s Snapshot) RemainingDays() decimal.Decimal       { return s.remainingDays }
func (s Snapshot) EntitlementHours() decimal.Decimal    { return s.entitlementHours }
func (s Snapshot) UsedHours() decimal.Decimal           { return s.usedHours }
func (s Snapshot) RemainingHours() decimal.Decimal      { return s.remainingHours }
func (s Snapshot) Episodes() int                        { return s.episodes }
func (s Snapshot) RollingWindowDays() int               { return s.rollingWindowDays }
func (s Snapshot) AlertThresholdDays() decimal.NullDecimal { return s.alertThresholdDays }
func (s Snapshot) AccrualRateDays() decimal.NullDecimal { return s.accrualRateDays }
func (s Snapshot) LastCalculatedAt() time.Time          { return s.lastCalculatedAt }
func (s Snapshot) Valid() bool                          { return s.valid }

// ConsistentTotals reports whether remaining = entitlement - used holds in
// both units. The recompute job must re-establish this before marking a
// snapshot valid.
func (s Snapshot) ConsistentTotals() bool {
	return s.remainingDays.Equal(s.entitlementDays.Sub(s.usedDays)) &&
		s.remainingHours.Equal(s.entitlementHours.Sub(s.usedHours))
}

// StaleAt reports whether the snapshot's last computation is older than the
// freshness window at the given instant.
func (s Snapshot) StaleAt(now time.Time, window time.Duration) bool {
	return now.Sub(s.lastCalculatedAt) > window
}

// AlertTriggered reports whether the remaining days balance has crossed the
// snapshot's optional alert threshold.
func (s Snapshot) AlertTriggered() bool {
	return s.alertThresholdDays.Valid &&
		s.remainingDays.LessThanOrEqual(s.alertThresholdDays.Decimal)
}

// View is a snapshot as served to callers: the last-known figures plus the
// freshness verdict. Staleness is data, never an error.
type View struct {
	Snapshot       Snapshot
	IsStale        bool
	Age            time.Duration
	AlertTriggered bool
}
