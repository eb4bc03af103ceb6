package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		raw.Close()
	})
	return sqlx.NewDb(raw, "pgx"), mock
}

var reportRowColumns = []string{
	"id", "title", "description", "status", "category", "created_by",
	"validated_by", "resolved_by", "created_at", "resolved_at", "location", "image_url", "rating",
}

func reportRow(id int64, status string, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(reportRowColumns).
		AddRow(id, "Pothole on Main St", "Large pothole", status, "pothole", int64(7),
			nil, nil, createdAt, nil, nil, nil, nil)
}
