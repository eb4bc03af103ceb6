package store

import (
	"context"
	"testing"
	"time"

	"civicreport-backend-go/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentsSetAdminClears(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("UPDATE department_admins SET admin_id = \\$1 WHERE department = \\$2").
		WithArgs(nil, "AAA").
		WillReturnRows(sqlmock.NewRows([]string{"department", "admin_id"}).AddRow("AAA", nil))

	item, err := NewDepartments(db).SetAdmin(context.Background(), models.DepartmentAAA, nil)
	require.NoError(t, err)
	assert.Nil(t, item.AdminID)
}

func TestAdministratorsExistsForUser(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := NewAdministrators(db).ExistsForUser(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPinsDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("DELETE FROM pinned_reports").
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "report_id", "pinned_at"}))

	removed, err := NewPins(db).Delete(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPinsListByUserJoinsReport(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery("JOIN reports r ON r.id = p.report_id").
		WithArgs(int64(7), 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "report_id", "pinned_at", "title", "description", "status", "category", "created_at",
		}).AddRow(int64(7), int64(1), now, "Pothole", "Deep", "open", "pothole", now))

	items, err := NewPins(db).ListByUser(context.Background(), 7, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pothole", items[0].Title)
	assert.Equal(t, int64(1), items[0].ReportID)
}

func TestLocationsNearby(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("asin").
		WithArgs(18.2, -66.5, 2.0, earthRadiusKm).
		WillReturnRows(sqlmock.NewRows([]string{"id", "latitude", "longitude", "distance"}).
			AddRow(int64(1), 18.21, -66.5, 1.11))

	items, err := NewLocations(db).Nearby(context.Background(), 18.2, -66.5, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Distance)
	assert.InDelta(t, 1.11, *items[0].Distance, 0.001)
}

func TestUsersGetByEmailIsCaseInsensitive(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("lower\\(email\\) = lower\\(\\$1\\)").
		WithArgs("Ana@City.test").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password", "admin", "suspended", "pinned", "created_at", "total_reports",
		}).AddRow(int64(7), "ana@city.test", "hash", false, false, false, time.Now(), 2))

	user, err := NewUsers(db).GetByEmail(context.Background(), "Ana@City.test")
	require.NoError(t, err)
	assert.Equal(t, 2, user.TotalReports)
	assert.Equal(t, "hash", user.PasswordHash)
}
