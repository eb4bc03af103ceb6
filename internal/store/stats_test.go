package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"civicreport-backend-go/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var overviewRowColumns = []string{
	"total_reports", "open_reports", "in_progress_reports", "resolved_reports", "denied_reports",
	"unique_reporters", "avg_rating", "rated_reports",
}

func TestStatsOverviewZeroWhenEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM reports r").
		WillReturnRows(sqlmock.NewRows(overviewRowColumns).AddRow(0, 0, 0, 0, 0, 0, 0.0, 0))

	stats, err := NewStats(db).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OverviewStats{}, stats)
}

func TestStatsDepartmentWithoutAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	columns := append([]string{"department", "admin_id", "admin_email"}, overviewRowColumns...)
	mock.ExpectQuery("FROM department_admins d").
		WithArgs("DTOP").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("DTOP", nil, nil, 0, 0, 0, 0, 0, 0, 0.0, 0))

	stats, err := NewStats(db).Department(context.Background(), models.DepartmentDTOP)
	require.NoError(t, err)
	assert.Equal(t, models.DepartmentDTOP, stats.Department)
	assert.Nil(t, stats.AdminID)
	assert.Zero(t, stats.Total)
}

func TestStatsAdminMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM administrators a").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"admin_id"}))

	_, err := NewStats(db).Admin(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStatsPerformanceWindow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`make_interval\(days => \$1\)`).
		WithArgs(30).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "department", "email", "reports_handled", "reports_resolved",
			"personally_resolved", "avg_rating", "categories_handled",
		}).AddRow(int64(3), "DTOP", "admin@city.test", 4, 2, 1, 4.5, 2))

	items, err := NewStats(db).Performance(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].AdminID)
	assert.Equal(t, 4, items[0].ReportsHandled)
}

func TestStatsDashboard(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("LIMIT 10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "category", "created_at"}).
			AddRow(int64(1), "Light out", "open", "street_light", time.Now()))
	mock.ExpectQuery("GROUP BY category").
		WillReturnRows(sqlmock.NewRows([]string{"category", "total", "resolved"}).AddRow("street_light", 1, 0))
	mock.ExpectQuery("GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("open", 1))

	dash, err := NewStats(db).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, dash.RecentReports, 1)
	assert.Equal(t, models.CategoryStreetLight, dash.CategoryStats[0].Category)
	assert.Equal(t, 1, dash.StatusStats[0].Count)
}

func TestStatsSummary(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("EXTRACT\\(EPOCH").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(2.5))
	mock.ExpectQuery("GROUP BY a.department").WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"department", "count"}).AddRow("LUMA", 3))
	mock.ExpectQuery("GROUP BY created_by").WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "count"}).AddRow(int64(7), 4))
	mock.ExpectQuery("GROUP BY validated_by").WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "count"}))
	mock.ExpectQuery("GROUP BY resolved_by").WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "count"}).AddRow(int64(3), 3))

	summary, err := NewStats(db).Summary(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, summary.AvgResolutionDays)
	assert.Equal(t, models.DepartmentLUMA, summary.TopDepartmentsResolved[0].Department)
	assert.Empty(t, summary.TopAdminsValidated)
	assert.Equal(t, int64(3), summary.TopAdminsResolved[0].ID)
}
