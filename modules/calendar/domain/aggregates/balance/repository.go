package balance

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrInvalidPlanType = gerrors.New("invalid entitlement plan type")
)

// Repository is the consumed balance-store port. Snapshot writes belong to
// the external recomputation job; RequestRecompute is the fire-and-forget
// hook that asks it to run.
type Repository interface {
	// FindValid returns all valid snapshots for the person, ordered by plan
	// type.
	FindValid(ctx context.Context, personID uuid.UUID) ([]Snapshot, error)

	// RequestRecompute records that a recomputation of the given plan is
	// wanted. It must never block on the recomputation itself.
	RequestRecompute(ctx context.Context, personID uuid.UUID, planType PlanType) error
}
