package balance

import (
	"time"

	"github.com/google/uuid"
)

// RecomputeRequested is published on the event bus whenever a caller asks for
// a balance recomputation. The recompute job (or its dispatcher) subscribes;
// nothing in the engine waits on it.
type RecomputeRequested struct {
	PersonID    uuid.UUID
	PlanType    PlanType
	RequestedAt time.Time
}

func NewRecomputeRequested(personID uuid.UUID, planType PlanType, at time.Time) *RecomputeRequested {
	return &RecomputeRequested{
		PersonID:    personID,
		PlanType:    planType,
		RequestedAt: at,
	}
}
