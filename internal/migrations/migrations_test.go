package migrations

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	return dir
}

func TestListMigrationsOrdersByVersionNumber(t *testing.T) {
	dir := writeFiles(t, "V10__later.sql", "V2__second.sql", "V1__schema.sql", "README.md")
	migs, err := listMigrations(dir)
	require.NoError(t, err)
	names := []string{}
	for _, mig := range migs {
		names = append(names, mig.Name)
	}
	assert.Equal(t, []string{"V1__schema.sql", "V2__second.sql", "V10__later.sql"}, names)
}

func TestListMigrationsRejectsBadName(t *testing.T) {
	dir := writeFiles(t, "schema.sql")
	_, err := listMigrations(dir)
	require.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	assert.Equal(t, "3", parseVersion("V3__add_index.sql"))
	assert.Equal(t, "", parseVersion("3__add_index.sql"))
	assert.Equal(t, "", parseVersion("V3.sql"))
}

func TestApplySkipsRecordedVersions(t *testing.T) {
	dir := writeFiles(t, "V1__schema.sql", "V2__seed.sql")
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	database := sqlx.NewDb(raw, "pgx")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("1"))
	mock.ExpectBegin()
	mock.ExpectExec("SELECT 1;").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("2", "V2__seed.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := Apply(context.Background(), database, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"V2__seed.sql"}, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}
