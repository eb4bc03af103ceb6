package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"civicreport-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const reportColumns = `id, title, description, status, category, created_by,
  validated_by, resolved_by, created_at, resolved_at, location, image_url, rating`

// Page is a LIMIT/OFFSET window.
type Page struct {
	Limit  int
	Offset int
}

type NewReport struct {
	Title       string
	Description string
	Category    models.Category
	CreatedBy   int64
	LocationID  *int64
	ImageURL    *string
}

type Reports struct {
	db sqlx.ExtContext
}

func NewReports(db sqlx.ExtContext) *Reports {
	return &Reports{db: db}
}

func (r *Reports) Insert(ctx context.Context, in NewReport) (models.Report, error) {
	var report models.Report
	err := sqlx.GetContext(ctx, r.db, &report, `
INSERT INTO reports (title, description, category, created_by, location, image_url, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, 'open', now())
RETURNING `+reportColumns,
		in.Title, in.Description, in.Category, in.CreatedBy, in.LocationID, in.ImageURL)
	return report, err
}

// IncrementUserReports bumps the lifetime counter and reports whether the user exists.
func (r *Reports) IncrementUserReports(ctx context.Context, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET total_reports = total_reports + 1 WHERE id = $1`, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *Reports) Get(ctx context.Context, id int64) (models.Report, error) {
	var report models.Report
	err := sqlx.GetContext(ctx, r.db, &report, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	return report, err
}

func (r *Reports) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists, `SELECT EXISTS (SELECT 1 FROM reports WHERE id = $1)`, id)
	return exists, err
}

// List returns reports ordered by creation time; ascending when asc is true.
func (r *Reports) List(ctx context.Context, page Page, asc bool) ([]models.Report, error) {
	order := "DESC"
	if asc {
		order = "ASC"
	}
	items := []models.Report{}
	err := sqlx.SelectContext(ctx, r.db, &items, `
SELECT `+reportColumns+`
FROM reports
ORDER BY created_at `+order+`, id `+order+`
LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	return items, err
}

func (r *Reports) Count(ctx context.Context) (int, error) {
	var total int
	err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM reports`)
	return total, err
}

// Update applies the supplied patch fields in one statement. It returns
// sql.ErrNoRows when the report does not exist.
func (r *Reports) Update(ctx context.Context, id int64, patch models.ReportPatch) (models.Report, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Rating != nil {
		add("rating", *patch.Rating)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.ValidatedBy != nil {
		add("validated_by", *patch.ValidatedBy)
	}
	if patch.ResolvedBy != nil {
		add("resolved_by", *patch.ResolvedBy)
	}
	if patch.ResolvedAt != nil {
		add("resolved_at", *patch.ResolvedAt)
	}
	if patch.LocationID != nil {
		add("location", *patch.LocationID)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE reports SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), reportColumns)
	var report models.Report
	err := sqlx.GetContext(ctx, r.db, &report, query, args...)
	return report, err
}

// SetValidated moves the report back to in_progress, so any resolution timestamp is cleared.
func (r *Reports) SetValidated(ctx context.Context, id, adminID int64) (models.Report, error) {
	var report models.Report
	err := sqlx.GetContext(ctx, r.db, &report, `
UPDATE reports SET validated_by = $1, status = 'in_progress', resolved_at = NULL
WHERE id = $2
RETURNING `+reportColumns, adminID, id)
	return report, err
}

func (r *Reports) SetResolved(ctx context.Context, id, adminID int64) (models.Report, error) {
	var report models.Report
	err := sqlx.GetContext(ctx, r.db, &report, `
UPDATE reports SET resolved_by = $1, status = 'resolved', resolved_at = GREATEST(now(), created_at)
WHERE id = $2
RETURNING `+reportColumns, adminID, id)
	return report, err
}

func (r *Reports) SetRating(ctx context.Context, id int64, rating int) (models.Report, error) {
	var report models.Report
	err := sqlx.GetContext(ctx, r.db, &report, `
UPDATE reports SET rating = $1
WHERE id = $2
RETURNING `+reportColumns, rating, id)
	return report, err
}

// SetStatus changes status and keeps resolved_at set exactly while the report is resolved.
func (r *Reports) SetStatus(ctx context.Context, id int64, status models.ReportStatus) (models.Report, error) {
	var report models.Report
	err := sqlx.GetContext(ctx, r.db, &report, `
UPDATE reports
SET status = $1,
    resolved_at = CASE WHEN $1 = 'resolved' THEN COALESCE(resolved_at, GREATEST(now(), created_at)) ELSE NULL END
WHERE id = $2
RETURNING `+reportColumns, status, id)
	return report, err
}

func (r *Reports) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted int64
	err := sqlx.GetContext(ctx, r.db, &deleted, `DELETE FROM reports WHERE id = $1 RETURNING id`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Reports) Search(ctx context.Context, q string, page Page) ([]models.Report, int, error) {
	pattern := "%" + q + "%"
	items := []models.Report{}
	err := sqlx.SelectContext(ctx, r.db, &items, `
SELECT `+reportColumns+`
FROM reports
WHERE title ILIKE $1 OR description ILIKE $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`, pattern, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	err = sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM reports WHERE title ILIKE $1 OR description ILIKE $1`, pattern)
	return items, total, err
}

// Filter narrows by status and/or category; a nil filter matches everything.
func (r *Reports) Filter(ctx context.Context, status *models.ReportStatus, category *models.Category, page Page) ([]models.Report, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if status != nil {
		args = append(args, *status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if category != nil {
		args = append(args, *category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	clause := strings.Join(where, " AND ")
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM reports WHERE `+clause, args...); err != nil {
		return nil, 0, err
	}
	args = append(args, page.Limit, page.Offset)
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		reportColumns, clause, len(args)-1, len(args))
	items := []models.Report{}
	err := sqlx.SelectContext(ctx, r.db, &items, query, args...)
	return items, total, err
}

func (r *Reports) ByUser(ctx context.Context, userID int64, page Page) ([]models.Report, int, error) {
	items := []models.Report{}
	err := sqlx.SelectContext(ctx, r.db, &items, `
SELECT `+reportColumns+`
FROM reports
WHERE created_by = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	err = sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM reports WHERE created_by = $1`, userID)
	return items, total, err
}

func (r *Reports) Pending(ctx context.Context, page Page) ([]models.Report, int, error) {
	items := []models.Report{}
	err := sqlx.SelectContext(ctx, r.db, &items, `
SELECT `+reportColumns+`
FROM reports
WHERE status = 'open'
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	err = sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM reports WHERE status = 'open'`)
	return items, total, err
}

// Assigned lists unresolved reports the administrator validated or resolved.
func (r *Reports) Assigned(ctx context.Context, adminID int64, page Page) ([]models.Report, int, error) {
	items := []models.Report{}
	err := sqlx.SelectContext(ctx, r.db, &items, `
SELECT `+reportColumns+`
FROM reports
WHERE (validated_by = $1 OR resolved_by = $1) AND status <> 'resolved'
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`, adminID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	err = sqlx.GetContext(ctx, r.db, &total, `
SELECT COUNT(*) FROM reports
WHERE (validated_by = $1 OR resolved_by = $1) AND status <> 'resolved'`, adminID)
	return items, total, err
}
