package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"civicreport-backend-go/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsInsertReturnsOpenReport(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO reports").
		WithArgs("Pothole on Main St", "Large pothole", "pothole", int64(7), nil, nil).
		WillReturnRows(reportRow(1, "open", created))

	report, err := NewReports(db).Insert(context.Background(), NewReport{
		Title:       "Pothole on Main St",
		Description: "Large pothole",
		Category:    models.CategoryPothole,
		CreatedBy:   7,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.ID)
	assert.Equal(t, models.StatusOpen, report.Status)
	assert.Nil(t, report.ValidatedBy)
	assert.Nil(t, report.ResolvedAt)
}

func TestReportsIncrementUserReports(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("UPDATE users SET total_reports = total_reports \\+ 1").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET total_reports").
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewReports(db)
	ok, err := repo.IncrementUserReports(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IncrementUserReports(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReportsUpdateBuildsOnlySuppliedColumns(t *testing.T) {
	db, mock := newMockDB(t)
	status := models.StatusDenied
	title := "Renamed"
	mock.ExpectQuery(`UPDATE reports SET status = \$1, title = \$2 WHERE id = \$3 RETURNING`).
		WithArgs("denied", "Renamed", int64(4)).
		WillReturnRows(reportRow(4, "denied", time.Now()))

	report, err := NewReports(db).Update(context.Background(), 4, models.ReportPatch{Status: &status, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDenied, report.Status)
}

func TestReportsUpdateEmptyPatchReadsReport(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM reports WHERE id = \\$1").
		WithArgs(int64(4)).
		WillReturnRows(reportRow(4, "open", time.Now()))

	_, err := NewReports(db).Update(context.Background(), 4, models.ReportPatch{})
	require.NoError(t, err)
}

func TestReportsSetResolvedUsesServerClock(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`UPDATE reports SET resolved_by = \$1, status = 'resolved', resolved_at = GREATEST\(now\(\), created_at\)`).
		WithArgs(int64(3), int64(1)).
		WillReturnRows(reportRow(1, "resolved", time.Now()))

	report, err := NewReports(db).SetResolved(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, report.Status)
}

func TestReportsSetValidatedClearsResolution(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE reports SET resolved_by = \$1, status = 'resolved'`).
		WithArgs(int64(3), int64(5)).
		WillReturnRows(sqlmock.NewRows(reportRowColumns).AddRow(
			int64(5), "Pothole on Main St", "Large pothole", "resolved", "pothole", int64(7),
			int64(3), int64(3), created, created.Add(time.Hour), nil, nil, nil))
	mock.ExpectQuery(`UPDATE reports SET validated_by = \$1, status = 'in_progress', resolved_at = NULL`).
		WithArgs(int64(4), int64(5)).
		WillReturnRows(sqlmock.NewRows(reportRowColumns).AddRow(
			int64(5), "Pothole on Main St", "Large pothole", "in_progress", "pothole", int64(7),
			int64(4), int64(3), created, nil, nil, nil, nil))

	repo := NewReports(db)
	resolved, err := repo.SetResolved(context.Background(), 5, 3)
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)

	report, err := repo.SetValidated(context.Background(), 5, 4)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, report.Status)
	assert.Nil(t, report.ResolvedAt)
	assert.Equal(t, int64(4), *report.ValidatedBy)
}

func TestReportsDeleteTwice(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("DELETE FROM reports WHERE id = \\$1 RETURNING id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectQuery("DELETE FROM reports WHERE id = \\$1 RETURNING id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewReports(db)
	deleted, err := repo.Delete(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(context.Background(), 9)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestReportsDeletePropagatesStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("DELETE FROM reports").WillReturnError(errors.New("conn reset"))

	_, err := NewReports(db).Delete(context.Background(), 9)
	require.Error(t, err)
}

func TestReportsFilterByStatusAndCategory(t *testing.T) {
	db, mock := newMockDB(t)
	status := models.StatusOpen
	category := models.CategorySanitation
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reports WHERE 1=1 AND status = \$1 AND category = \$2`).
		WithArgs("open", "sanitation").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM reports WHERE 1=1 AND status = \$1 AND category = \$2 ORDER BY created_at DESC, id DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("open", "sanitation", 10, 0).
		WillReturnRows(reportRow(2, "open", time.Now()))

	items, total, err := NewReports(db).Filter(context.Background(), &status, &category, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
}

func TestReportsAssignedExcludesResolved(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`WHERE \(validated_by = \$1 OR resolved_by = \$1\) AND status <> 'resolved'`).
		WithArgs(int64(3), 10, 10).
		WillReturnRows(sqlmock.NewRows(reportRowColumns))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reports`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	items, total, err := NewReports(db).Assigned(context.Background(), 3, Page{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, total)
}
