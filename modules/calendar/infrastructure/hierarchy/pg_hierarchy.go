package hierarchy

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/peoplekit/teamcal/modules/calendar/services"
	"github.com/peoplekit/teamcal/pkg/composables"
)

var ErrNoManager = gerrors.New("person has no manager")

// PgHierarchyProvider answers organizational-relationship lookups from the
// calendar_org_relations table. The scope resolver treats any failure here as
// DependencyUnavailable.
type PgHierarchyProvider struct{}

func NewHierarchyProvider() services.HierarchyProvider {
	return &PgHierarchyProvider{}
}

func (p *PgHierarchyProvider) DirectReportsOf(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	return queryIDs(ctx, `
SELECT person_id
FROM calendar_org_relations
WHERE manager_id = $1
`, pgUUID(managerID))
}

// TeamOf returns the person's whole reporting subtree.
func (p *PgHierarchyProvider) TeamOf(ctx context.Context, personID uuid.UUID) ([]uuid.UUID, error) {
	return queryIDs(ctx, `
WITH RECURSIVE team AS (
	SELECT person_id
	FROM calendar_org_relations
	WHERE manager_id = $1
	UNION
	SELECT r.person_id
	FROM calendar_org_relations r
	JOIN team t ON r.manager_id = t.person_id
)
SELECT person_id FROM team
`, pgUUID(personID))
}

func (p *PgHierarchyProvider) ManagerOf(ctx context.Context, personID uuid.UUID) (uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	var managerID pgtype.UUID
	err = tx.QueryRow(ctx, `
SELECT manager_id
FROM calendar_org_relations
WHERE person_id = $1
`, pgUUID(personID)).Scan(&managerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNoManager
		}
		return uuid.Nil, err
	}
	if !managerID.Valid {
		return uuid.Nil, ErrNoManager
	}
	return uuid.UUID(managerID.Bytes), nil
}

func (p *PgHierarchyProvider) PeersOf(ctx context.Context, personID uuid.UUID) ([]uuid.UUID, error) {
	return queryIDs(ctx, `
SELECT person_id
FROM calendar_org_relations
WHERE manager_id IS NOT NULL
	AND manager_id = (SELECT manager_id FROM calendar_org_relations WHERE person_id = $1)
	AND person_id <> $1
`, pgUUID(personID))
}

func queryIDs(ctx context.Context, sql string, args ...any) ([]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to query org relations")
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, 16)
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, gerrors.Wrap(err, "failed to scan org relation")
		}
		if id.Valid {
			out = append(out, uuid.UUID(id.Bytes))
		}
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
