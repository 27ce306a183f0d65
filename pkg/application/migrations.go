package application

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationManager collects embedded schema files from modules and applies
// them at startup. Schemas are written to be idempotent (CREATE ... IF NOT
// EXISTS), so re-running on boot is safe.
type MigrationManager interface {
	RegisterSchema(files *embed.FS)
	Apply(ctx context.Context) error
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []*embed.FS
}

func (m *migrationManager) RegisterSchema(files *embed.FS) {
	m.schemas = append(m.schemas, files)
}

func (m *migrationManager) Apply(ctx context.Context) error {
	for _, schema := range m.schemas {
		files, err := listSQLFiles(schema)
		if err != nil {
			return err
		}
		sort.Strings(files)
		for _, file := range files {
			contents, err := schema.ReadFile(file)
			if err != nil {
				return err
			}
			if _, err := m.pool.Exec(ctx, string(contents)); err != nil {
				return err
			}
		}
	}
	return nil
}

func listSQLFiles(fsys fs.FS) ([]string, error) {
	var out []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
