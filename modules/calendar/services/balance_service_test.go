package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/balance"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
	"github.com/peoplekit/teamcal/pkg/composables"
	"github.com/peoplekit/teamcal/pkg/eventbus"
	"github.com/peoplekit/teamcal/pkg/serrors"
)

type balanceRepoStub struct {
	findValid        func(ctx context.Context, personID uuid.UUID) ([]balance.Snapshot, error)
	requestRecompute func(ctx context.Context, personID uuid.UUID, planType balance.PlanType) error
}

func (s *balanceRepoStub) FindValid(ctx context.Context, personID uuid.UUID) ([]balance.Snapshot, error) {
	return s.findValid(ctx, personID)
}

func (s *balanceRepoStub) RequestRecompute(ctx context.Context, personID uuid.UUID, planType balance.PlanType) error {
	if s.requestRecompute == nil {
		return nil
	}
	return s.requestRecompute(ctx, personID, planType)
}

func quietBus() eventbus.EventBus {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return eventbus.NewEventPublisher(log)
}

func snapshotCalculatedAt(personID uuid.UUID, at time.Time) balance.Snapshot {
	return balance.Hydrate(
		personID,
		balance.PlanAnnualLeave,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(30), decimal.NewFromInt(12), decimal.NewFromInt(18),
		decimal.NewFromInt(240), decimal.NewFromInt(96), decimal.NewFromInt(144),
		0,
		0,
		decimal.NullDecimal{},
		decimal.NullDecimal{},
		at,
		true,
	)
}

func viewerContext(v viewer.Viewer) context.Context {
	return composables.WithViewer(context.Background(), v)
}

func TestBalanceService_FreshSnapshotNotFlagged(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	repo := &balanceRepoStub{
		findValid: func(_ context.Context, _ uuid.UUID) ([]balance.Snapshot, error) {
			return []balance.Snapshot{snapshotCalculatedAt(person, now.Add(-30 * time.Minute))}, nil
		},
	}
	svc := NewBalanceService(repo, quietBus(), time.Hour)
	svc.now = func() time.Time { return now }

	views, err := svc.Balances(viewerContext(viewer.Viewer{ID: person, Role: viewer.RoleEmployee, OrgID: testOrgID}), person)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.False(t, views[0].IsStale)
	require.Equal(t, 30*time.Minute, views[0].Age)
}

func TestBalanceService_StaleSnapshotFlaggedNotRejected(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	repo := &balanceRepoStub{
		findValid: func(_ context.Context, _ uuid.UUID) ([]balance.Snapshot, error) {
			return []balance.Snapshot{snapshotCalculatedAt(person, now.Add(-61 * time.Minute))}, nil
		},
	}
	svc := NewBalanceService(repo, quietBus(), time.Hour)
	svc.now = func() time.Time { return now }

	views, err := svc.Balances(viewerContext(viewer.Viewer{ID: person, Role: viewer.RoleEmployee, OrgID: testOrgID}), person)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.True(t, views[0].IsStale)
	// Figures are still the last-known ones.
	require.True(t, views[0].Snapshot.RemainingDays().Equal(decimal.NewFromInt(18)))
}

func TestBalanceService_ExactlyOnWindowBoundaryIsFresh(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	repo := &balanceRepoStub{
		findValid: func(_ context.Context, _ uuid.UUID) ([]balance.Snapshot, error) {
			return []balance.Snapshot{snapshotCalculatedAt(person, now.Add(-time.Hour))}, nil
		},
	}
	svc := NewBalanceService(repo, quietBus(), time.Hour)
	svc.now = func() time.Time { return now }

	views, err := svc.Balances(viewerContext(viewer.Viewer{ID: person, Role: viewer.RoleEmployee, OrgID: testOrgID}), person)
	require.NoError(t, err)
	require.False(t, views[0].IsStale)
}

func TestBalanceService_NoSnapshotsIsEmptyNotError(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	repo := &balanceRepoStub{
		findValid: func(_ context.Context, _ uuid.UUID) ([]balance.Snapshot, error) {
			return nil, nil
		},
	}
	svc := NewBalanceService(repo, quietBus(), time.Hour)

	views, err := svc.Balances(viewerContext(viewer.Viewer{ID: person, Role: viewer.RoleEmployee, OrgID: testOrgID}), person)
	require.NoError(t, err)
	require.Empty(t, views)
}

func TestBalanceService_ReadAuthorization(t *testing.T) {
	owner := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	other := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	repo := &balanceRepoStub{
		findValid: func(_ context.Context, _ uuid.UUID) ([]balance.Snapshot, error) {
			return nil, nil
		},
	}
	svc := NewBalanceService(repo, quietBus(), time.Hour)

	for _, role := range []viewer.Role{viewer.RoleEmployee, viewer.RoleManager} {
		_, err := svc.Balances(viewerContext(viewer.Viewer{ID: other, Role: role, OrgID: testOrgID}), owner)
		require.True(t, serrors.IsPermissionDenied(err), "role %q", role)
	}

	for _, role := range []viewer.Role{viewer.RoleHRManager, viewer.RoleAdmin} {
		_, err := svc.Balances(viewerContext(viewer.Viewer{ID: other, Role: role, OrgID: testOrgID}), owner)
		require.NoError(t, err, "role %q", role)
	}

	_, err := svc.Balances(viewerContext(viewer.Viewer{ID: owner, Role: viewer.RoleEmployee, OrgID: testOrgID}), owner)
	require.NoError(t, err)
}

func TestBalanceService_NoViewerIsPermissionDenied(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	svc := NewBalanceService(&balanceRepoStub{}, quietBus(), time.Hour)

	_, err := svc.Balances(context.Background(), person)
	require.True(t, serrors.IsPermissionDenied(err))
}

func TestBalanceService_RecomputePublishesEvent(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	bus := quietBus()

	var published *balance.RecomputeRequested
	bus.Subscribe(func(e *balance.RecomputeRequested) {
		published = e
	})

	svc := NewBalanceService(&balanceRepoStub{}, bus, time.Hour)
	err := svc.RequestRecompute(viewerContext(viewer.Viewer{ID: person, Role: viewer.RoleEmployee, OrgID: testOrgID}), person, balance.PlanSickness)
	require.NoError(t, err)
	require.NotNil(t, published)
	require.Equal(t, person, published.PersonID)
	require.Equal(t, balance.PlanSickness, published.PlanType)
}

func TestBalanceService_RecomputeStoreFailureIsSwallowed(t *testing.T) {
	person := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	repo := &balanceRepoStub{
		requestRecompute: func(_ context.Context, _ uuid.UUID, _ balance.PlanType) error {
			return errors.New("queue table unavailable")
		},
	}
	svc := NewBalanceService(repo, quietBus(), time.Hour)

	err := svc.RequestRecompute(viewerContext(viewer.Viewer{ID: person, Role: viewer.RoleEmployee, OrgID: testOrgID}), person, balance.PlanAnnualLeave)
	require.NoError(t, err)
}
