package application

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

// migrationManager applies embedded schema files registered by modules.
// Schema files are idempotent (CREATE IF NOT EXISTS) and applied in
// lexicographic order within each registered filesystem.
type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []*embed.FS
}

func (m *migrationManager) RegisterSchema(fsys ...*embed.FS) {
	m.schemas = append(m.schemas, fsys...)
}

func (m *migrationManager) Apply(ctx context.Context) error {
	for _, fsys := range m.schemas {
		files, err := collectSQLFiles(fsys)
		if err != nil {
			return err
		}
		for _, file := range files {
			content, err := fsys.ReadFile(file)
			if err != nil {
				return errors.Wrapf(err, "read schema %s", file)
			}
			if _, err := m.pool.Exec(ctx, string(content)); err != nil {
				return errors.Wrapf(err, "apply schema %s", file)
			}
		}
	}
	return nil
}

func collectSQLFiles(fsys *embed.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
