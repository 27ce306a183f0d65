package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
	"github.com/peoplekit/teamcal/pkg/composables"
	"github.com/peoplekit/teamcal/pkg/metrics"
	"github.com/peoplekit/teamcal/pkg/serrors"
)

// Scope is a named visibility tier controlling whose events a viewer may
// request.
type Scope string

const (
	ScopeSelf          Scope = "self"
	ScopeDirectReports Scope = "direct_reports"
	ScopeTeam          Scope = "team"
	ScopeOrganization  Scope = "organization"
	ScopePeers         Scope = "peers"
	ScopeManager       Scope = "manager"
)

// ParseScope maps a raw scope string to a Scope. Anything unknown or empty
// collapses to SELF: the default must never widen visibility.
func ParseScope(s string) Scope {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeDirectReports:
		return ScopeDirectReports
	case ScopeTeam:
		return ScopeTeam
	case ScopeOrganization:
		return ScopeOrganization
	case ScopePeers:
		return ScopePeers
	case ScopeManager:
		return ScopeManager
	default:
		return ScopeSelf
	}
}

// PersonSet is the resolved set of person identifiers a viewer may request
// events for. The organization-wide scope is represented as an unbounded set
// rather than an enumeration, since the event query is already restricted to
// one organization.
type PersonSet struct {
	all bool
	ids map[uuid.UUID]struct{}
}

func NewPersonSet(ids ...uuid.UUID) PersonSet {
	set := PersonSet{ids: make(map[uuid.UUID]struct{}, len(ids))}
	for _, id := range ids {
		set.ids[id] = struct{}{}
	}
	return set
}

// AllPersons returns the unbounded set: every person in the organization.
func AllPersons() PersonSet {
	return PersonSet{all: true}
}

func (s PersonSet) All() bool { return s.all }

func (s PersonSet) Contains(id uuid.UUID) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

func (s PersonSet) Len() int {
	return len(s.ids)
}

// IDs returns the enumerated members in a stable order. Empty for the
// unbounded set.
func (s PersonSet) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Narrow intersects the set with an explicit id list. An explicit request can
// narrow but never widen the resolved scope: ids outside the set are dropped
// silently, which is a filter, not an authorization outcome.
func (s PersonSet) Narrow(explicit []uuid.UUID) PersonSet {
	if len(explicit) == 0 {
		return s
	}
	narrowed := PersonSet{ids: make(map[uuid.UUID]struct{}, len(explicit))}
	for _, id := range explicit {
		if s.Contains(id) {
			narrowed.ids[id] = struct{}{}
		}
	}
	return narrowed
}

// HierarchyProvider is the consumed organizational-hierarchy port. Each
// lookup may fail; the resolver translates any failure into
// DependencyUnavailable rather than defaulting to an empty set.
type HierarchyProvider interface {
	DirectReportsOf(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error)
	TeamOf(ctx context.Context, personID uuid.UUID) ([]uuid.UUID, error)
	ManagerOf(ctx context.Context, personID uuid.UUID) (uuid.UUID, error)
	PeersOf(ctx context.Context, personID uuid.UUID) ([]uuid.UUID, error)
}

// ScopeResolver decides, per viewer and scope, which person identifiers may
// be requested. It is a pure function of viewer, scope and the hierarchy
// lookup; it holds no state of its own.
type ScopeResolver struct {
	hierarchy HierarchyProvider
	timeout   time.Duration
}

func NewScopeResolver(hierarchy HierarchyProvider, timeout time.Duration) *ScopeResolver {
	return &ScopeResolver{
		hierarchy: hierarchy,
		timeout:   timeout,
	}
}

// AllowedPersons resolves the scope for the viewer. Insufficient role fails
// with PermissionDenied, never with an empty set: callers must be able to
// tell "denied" apart from "nobody matches".
func (r *ScopeResolver) AllowedPersons(ctx context.Context, scope Scope, v viewer.Viewer) (PersonSet, error) {
	switch scope {
	case ScopeSelf:
		return NewPersonSet(v.ID), nil

	case ScopeDirectReports:
		if err := requireManagerial(scope, v.Role); err != nil {
			return PersonSet{}, err
		}
		reports, err := r.lookupMany(ctx, v, func(ctx context.Context) ([]uuid.UUID, error) {
			return r.hierarchy.DirectReportsOf(ctx, v.ID)
		})
		if err != nil {
			return PersonSet{}, err
		}
		return NewPersonSet(append(reports, v.ID)...), nil

	case ScopeTeam:
		if err := requireManagerial(scope, v.Role); err != nil {
			return PersonSet{}, err
		}
		team, err := r.lookupMany(ctx, v, func(ctx context.Context) ([]uuid.UUID, error) {
			return r.hierarchy.TeamOf(ctx, v.ID)
		})
		if err != nil {
			return PersonSet{}, err
		}
		return NewPersonSet(append(team, v.ID)...), nil

	case ScopeOrganization:
		if err := requireAdministrative(scope, v.Role); err != nil {
			return PersonSet{}, err
		}
		return AllPersons(), nil

	case ScopePeers:
		peers, err := r.lookupMany(ctx, v, func(ctx context.Context) ([]uuid.UUID, error) {
			return r.hierarchy.PeersOf(ctx, v.ID)
		})
		if err != nil {
			return PersonSet{}, err
		}
		return NewPersonSet(append(peers, v.ID)...), nil

	case ScopeManager:
		var managerID uuid.UUID
		_, err := r.lookupMany(ctx, v, func(ctx context.Context) ([]uuid.UUID, error) {
			id, err := r.hierarchy.ManagerOf(ctx, v.ID)
			if err != nil {
				return nil, err
			}
			managerID = id
			return []uuid.UUID{id}, nil
		})
		if err != nil {
			return PersonSet{}, err
		}
		return NewPersonSet(managerID, v.ID), nil

	default:
		// Unknown scope falls back to SELF, never to broader visibility.
		return NewPersonSet(v.ID), nil
	}
}

func requireManagerial(scope Scope, role viewer.Role) error {
	switch role {
	case viewer.RoleManager, viewer.RoleHRManager, viewer.RoleAdmin:
		return nil
	case viewer.RoleEmployee:
	}
	metrics.ScopeDenied.WithLabelValues(string(scope)).Inc()
	return serrors.NewPermissionDenied("not authorized for this scope")
}

func requireAdministrative(scope Scope, role viewer.Role) error {
	switch role {
	case viewer.RoleHRManager, viewer.RoleAdmin:
		return nil
	case viewer.RoleEmployee, viewer.RoleManager:
	}
	metrics.ScopeDenied.WithLabelValues(string(scope)).Inc()
	return serrors.NewPermissionDenied("not authorized for this scope")
}

// lookupMany runs a hierarchy lookup under the configured timeout. A missing
// provider, a lookup error or an expired deadline all surface as
// DependencyUnavailable.
func (r *ScopeResolver) lookupMany(ctx context.Context, v viewer.Viewer, fn func(context.Context) ([]uuid.UUID, error)) ([]uuid.UUID, error) {
	if r.hierarchy == nil {
		metrics.HierarchyUnavailable.Inc()
		return nil, serrors.NewDependencyUnavailable("organizational hierarchy lookup is not configured")
	}

	lookupCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ids, err := fn(lookupCtx)
	if err != nil {
		metrics.HierarchyUnavailable.Inc()
		if logger, ok := composables.TryUseLogger(ctx); ok {
			logger.WithError(err).WithField("viewer", v.ID).Warn("hierarchy lookup failed")
		}
		return nil, serrors.NewDependencyUnavailable("organizational hierarchy lookup failed")
	}
	return ids, nil
}
