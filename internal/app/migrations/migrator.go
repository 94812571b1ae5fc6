package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
)

const migrationTable = "schema_migrations"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Migration is one versioned SQL file
type Migration struct {
	Version string
	Name    string
}

// Migrator applies versioned SQL files to PostgreSQL
type Migrator struct {
	db *pgxpool.Pool
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// Discover lists the *.sql files at the root of fsys in name order.
// "001_init.sql" has version "001".
func Discover(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var found []Migration
	seen := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		version, _, _ := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %s", other, name, version)
		}
		seen[version] = name
		found = append(found, Migration{Version: version, Name: name})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);`

	if _, err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	sql, args, err := psql.Select("version").From(migrationTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build migration query: %w", err)
	}

	rows, err := m.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load applied migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to load applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// apply runs one migration and its bookkeeping row in a single transaction
func (m *Migrator) apply(ctx context.Context, fsys fs.FS, migration Migration) error {
	content, err := fs.ReadFile(fsys, migration.Name)
	if err != nil {
		return fmt.Errorf("failed to read migration %s: %w", migration.Name, err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("error occurred during SQL migration %s: %w", migration.Name, err)
	}

	sql, args, err := psql.Insert(migrationTable).Columns("version").Values(migration.Version).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build migration record: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Name, err)
	}
	return nil
}

// Apply runs every migration in fsys that has not been applied yet and returns
// how many were run.
func (m *Migrator) Apply(ctx context.Context, fsys fs.FS) (int, error) {
	pending, err := Discover(fsys)
	if err != nil {
		return 0, err
	}
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, migration := range pending {
		if applied[migration.Version] {
			logger.Debug().Str("migration", migration.Name).Msg("Migration already applied, skipping")
			continue
		}
		if err := m.apply(ctx, fsys, migration); err != nil {
			return count, err
		}
		logger.Info().Str("migration", migration.Name).Msg("Migration applied")
		count++
	}
	return count, nil
}
