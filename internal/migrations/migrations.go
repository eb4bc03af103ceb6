package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"civicreport-backend-go/internal/db"

	"github.com/jmoiron/sqlx"
)

// Migration is one versioned SQL file.
type Migration struct {
	Name    string
	Version string
	Path    string
}

// Apply runs every V<n>__*.sql file in dir that is not yet recorded in
// schema_migrations, in version order, and returns the names it applied.
func Apply(ctx context.Context, database *sqlx.DB, dir string) ([]string, error) {
	pending, err := Pending(ctx, database, dir)
	if err != nil {
		return nil, err
	}
	applied := make([]string, 0, len(pending))
	for _, mig := range pending {
		if err := applyMigration(ctx, database, mig); err != nil {
			return applied, err
		}
		applied = append(applied, mig.Name)
	}
	return applied, nil
}

// Pending lists the migrations in dir that have not been applied.
func Pending(ctx context.Context, database *sqlx.DB, dir string) ([]Migration, error) {
	if err := ensureTable(ctx, database); err != nil {
		return nil, err
	}
	migs, err := listMigrations(dir)
	if err != nil {
		return nil, err
	}
	done, err := appliedVersions(ctx, database)
	if err != nil {
		return nil, err
	}
	pending := make([]Migration, 0, len(migs))
	for _, mig := range migs {
		if done[mig.Version] {
			continue
		}
		pending = append(pending, mig)
	}
	return pending, nil
}

func ensureTable(ctx context.Context, database *sqlx.DB) error {
	_, err := database.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func listMigrations(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	migs := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		version := parseVersion(name)
		if version == "" {
			return nil, fmt.Errorf("migration %s: name must look like V<n>__description.sql", name)
		}
		migs = append(migs, Migration{
			Name:    name,
			Version: version,
			Path:    filepath.Join(dir, name),
		})
	}
	sort.Slice(migs, func(i, j int) bool {
		iVersion, iOk := parseVersionNumber(migs[i].Version)
		jVersion, jOk := parseVersionNumber(migs[j].Version)
		switch {
		case iOk && jOk && iVersion != jVersion:
			return iVersion < jVersion
		case iOk != jOk:
			return iOk
		default:
			return migs[i].Name < migs[j].Name
		}
	})
	return migs, nil
}

func appliedVersions(ctx context.Context, database *sqlx.DB) (map[string]bool, error) {
	rows := []string{}
	if err := database.SelectContext(ctx, &rows, `SELECT version FROM schema_migrations`); err != nil {
		return nil, err
	}
	versions := make(map[string]bool, len(rows))
	for _, version := range rows {
		versions[version] = true
	}
	return versions, nil
}

func applyMigration(ctx context.Context, database *sqlx.DB, mig Migration) error {
	content, err := os.ReadFile(mig.Path)
	if err != nil {
		return err
	}
	return db.WithTx(ctx, database, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply %s: %w", mig.Name, err)
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
		return err
	})
}

func parseVersion(name string) string {
	if !strings.HasPrefix(name, "V") {
		return ""
	}
	parts := strings.SplitN(name[1:], "__", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[0])
}

func parseVersionNumber(raw string) (int, bool) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
