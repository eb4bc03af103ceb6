package services

import (
	"context"
	"testing"

	"civicreport-backend-go/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var overviewColumns = []string{
	"total_reports", "open_reports", "in_progress_reports", "resolved_reports", "denied_reports",
	"unique_reporters", "avg_rating", "rated_reports",
}

func TestAdminStatsZeroForIdleAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)
	mock.ExpectQuery("FROM administrators a").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"admin_id", "department", "email",
			"total_reports", "open_reports", "in_progress_reports", "resolved_reports", "denied_reports",
			"avg_rating", "resolved_personally", "validated_only", "categories_handled",
		}).AddRow(int64(3), "LUMA", "admin@city.test", 0, 0, 0, 0, 0, 0.0, 0, 0, 0))

	stats, err := svc.Admin(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.AdminID)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.AvgRating)
}

func TestAdminStatsUnknownAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)
	mock.ExpectQuery("FROM administrators a").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"admin_id"}))

	_, err := svc.Admin(context.Background(), 42)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDepartmentStatsWithoutAdminIsZero(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)
	columns := append([]string{"department", "admin_id", "admin_email"}, overviewColumns...)
	mock.ExpectQuery("FROM department_admins d").
		WithArgs("DTOP").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("DTOP", nil, nil, 0, 0, 0, 0, 0, 0, 0.0, 0))

	stats, err := svc.Department(context.Background(), "dtop")
	require.NoError(t, err)
	assert.Equal(t, models.DepartmentDTOP, stats.Department)
	assert.Zero(t, stats.Total)
}

func TestDepartmentStatsUnknownName(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewStatsService(db)
	_, err := svc.Department(context.Background(), "NASA")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestPerformanceRejectsOutOfRangeDays(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewStatsService(db)
	for _, days := range []int{0, -3, 36501, 1000000} {
		_, err := svc.Performance(context.Background(), days)
		assert.Equal(t, KindValidation, KindOf(err))
	}
}

func TestOverviewReflectsResolution(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)
	mock.ExpectQuery("FROM reports r").
		WillReturnRows(sqlmock.NewRows(overviewColumns).AddRow(4, 1, 1, 2, 0, 3, 4.5, 2))

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Resolved)
	assert.Equal(t, 3, stats.UniqueReporters)
	assert.Equal(t, 4.5, stats.AvgRating)
}
