package store

import (
	"context"
	"database/sql"
	"errors"

	"civicreport-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

type Pins struct {
	db sqlx.ExtContext
}

func NewPins(db sqlx.ExtContext) *Pins {
	return &Pins{db: db}
}

func (p *Pins) Insert(ctx context.Context, userID, reportID int64) (models.PinnedReport, error) {
	var pin models.PinnedReport
	err := sqlx.GetContext(ctx, p.db, &pin, `
INSERT INTO pinned_reports (user_id, report_id)
VALUES ($1, $2)
RETURNING user_id, report_id, pinned_at`, userID, reportID)
	return pin, err
}

func (p *Pins) Delete(ctx context.Context, userID, reportID int64) (bool, error) {
	var pin models.PinnedReport
	err := sqlx.GetContext(ctx, p.db, &pin, `
DELETE FROM pinned_reports
WHERE user_id = $1 AND report_id = $2
RETURNING user_id, report_id, pinned_at`, userID, reportID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *Pins) ListByUser(ctx context.Context, userID int64, page Page) ([]models.PinnedReportDetail, error) {
	items := []models.PinnedReportDetail{}
	err := sqlx.SelectContext(ctx, p.db, &items, `
SELECT p.user_id, p.report_id, p.pinned_at, r.title, r.description, r.status, r.category, r.created_at
FROM pinned_reports p
JOIN reports r ON r.id = p.report_id
WHERE p.user_id = $1
ORDER BY p.pinned_at DESC
LIMIT $2 OFFSET $3`, userID, page.Limit, page.Offset)
	return items, err
}

func (p *Pins) CountByUser(ctx context.Context, userID int64) (int, error) {
	var total int
	err := sqlx.GetContext(ctx, p.db, &total, `SELECT COUNT(*) FROM pinned_reports WHERE user_id = $1`, userID)
	return total, err
}

func (p *Pins) Exists(ctx context.Context, userID, reportID int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, p.db, &exists, `
SELECT EXISTS (SELECT 1 FROM pinned_reports WHERE user_id = $1 AND report_id = $2)`, userID, reportID)
	return exists, err
}
