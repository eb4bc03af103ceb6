package services

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

var reportColumns = []string{
	"id", "title", "description", "status", "category", "created_by",
	"validated_by", "resolved_by", "created_at", "resolved_at", "location", "image_url", "rating",
}

type reportRowOpts struct {
	status      string
	validatedBy interface{}
	resolvedBy  interface{}
	resolvedAt  interface{}
	rating      interface{}
	createdAt   time.Time
}

func reportRows(id int64, o reportRowOpts) *sqlmock.Rows {
	if o.status == "" {
		o.status = "open"
	}
	if o.createdAt.IsZero() {
		o.createdAt = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	}
	return sqlmock.NewRows(reportColumns).AddRow(
		id, "Pothole on Main St", "Large pothole", o.status, "pothole", int64(7),
		o.validatedBy, o.resolvedBy, o.createdAt, o.resolvedAt, nil, nil, o.rating,
	)
}

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
