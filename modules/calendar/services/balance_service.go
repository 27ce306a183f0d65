package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/balance"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
	"github.com/peoplekit/teamcal/pkg/composables"
	"github.com/peoplekit/teamcal/pkg/eventbus"
	"github.com/peoplekit/teamcal/pkg/metrics"
	"github.com/peoplekit/teamcal/pkg/serrors"
)

// BalanceService is the read side of the entitlement balance cache. It never
// recomputes anything itself: snapshots past the freshness window are served
// with a staleness flag, and recomputation is only ever requested through the
// fire-and-forget hook.
type BalanceService struct {
	repo      balance.Repository
	publisher eventbus.EventBus
	freshness time.Duration
	now       func() time.Time
}

func NewBalanceService(repo balance.Repository, publisher eventbus.EventBus, freshness time.Duration) *BalanceService {
	return &BalanceService{
		repo:      repo,
		publisher: publisher,
		freshness: freshness,
		now:       time.Now,
	}
}

// Balances returns all valid snapshots for the person, each flagged with its
// freshness verdict. An authorized person with no snapshots gets an empty
// sequence, not an error.
func (s *BalanceService) Balances(ctx context.Context, personID uuid.UUID) ([]balance.View, error) {
	v, err := composables.UseViewer(ctx)
	if err != nil {
		return nil, serrors.NewPermissionDenied("no viewer identity")
	}
	if err := authorizeBalanceRead(v, personID); err != nil {
		return nil, err
	}

	snapshots, err := s.repo.FindValid(ctx, personID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]balance.View, 0, len(snapshots))
	for _, snap := range snapshots {
		age := now.Sub(snap.LastCalculatedAt())
		stale := snap.StaleAt(now, s.freshness)
		if stale {
			metrics.StaleBalanceReads.Inc()
		}
		views = append(views, balance.View{
			Snapshot:       snap,
			IsStale:        stale,
			Age:            age,
			AlertTriggered: snap.AlertTriggered(),
		})
	}
	return views, nil
}

// RequestRecompute asks the external recomputation job to refresh one plan.
// The request is fire-and-forget: a failing store hook is logged, never
// surfaced, and nothing waits on the job.
func (s *BalanceService) RequestRecompute(ctx context.Context, personID uuid.UUID, planType balance.PlanType) error {
	v, err := composables.UseViewer(ctx)
	if err != nil {
		return serrors.NewPermissionDenied("no viewer identity")
	}
	if err := authorizeBalanceRead(v, personID); err != nil {
		return err
	}

	metrics.RecomputeRequests.Inc()
	s.publisher.Publish(balance.NewRecomputeRequested(personID, planType, s.now()))

	if err := s.repo.RequestRecompute(ctx, personID, planType); err != nil {
		if logger, ok := composables.TryUseLogger(ctx); ok {
			logger.WithError(err).WithField("person", personID).Warn("failed to record recompute request")
		}
	}
	return nil
}

// Balances are personal data: only the person themselves or the HR tier may
// read them. A manager's reporting line does not extend to balances.
func authorizeBalanceRead(v viewer.Viewer, personID uuid.UUID) error {
	if v.Owns(personID) {
		return nil
	}
	switch v.Role {
	case viewer.RoleHRManager, viewer.RoleAdmin:
		return nil
	case viewer.RoleEmployee, viewer.RoleManager:
	}
	return serrors.NewPermissionDenied("not authorized to view balances for this person")
}
