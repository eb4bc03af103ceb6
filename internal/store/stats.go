package store

import (
	"context"

	"civicreport-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const statusCountColumns = `
  COUNT(r.id) AS total_reports,
  COUNT(*) FILTER (WHERE r.status = 'open') AS open_reports,
  COUNT(*) FILTER (WHERE r.status = 'in_progress') AS in_progress_reports,
  COUNT(*) FILTER (WHERE r.status = 'resolved') AS resolved_reports,
  COUNT(*) FILTER (WHERE r.status = 'denied') AS denied_reports`

const overviewColumns = statusCountColumns + `,
  COUNT(DISTINCT r.created_by) AS unique_reporters,
  COALESCE(AVG(r.rating), 0)::float8 AS avg_rating,
  COUNT(r.rating) AS rated_reports`

// Stats runs the grouped aggregate statements behind the rollup endpoints.
type Stats struct {
	db sqlx.QueryerContext
}

func NewStats(db sqlx.QueryerContext) *Stats {
	return &Stats{db: db}
}

func (s *Stats) Overview(ctx context.Context) (models.OverviewStats, error) {
	var stats models.OverviewStats
	err := sqlx.GetContext(ctx, s.db, &stats, `SELECT `+overviewColumns+` FROM reports r`)
	return stats, err
}

const departmentStatsQuery = `
SELECT d.department, d.admin_id, u.email AS admin_email,` + overviewColumns + `
FROM department_admins d
LEFT JOIN administrators a ON a.id = d.admin_id
LEFT JOIN users u ON u.id = a.id
LEFT JOIN reports r ON a.id IS NOT NULL AND (r.validated_by = a.id OR r.resolved_by = a.id)`

// Department returns sql.ErrNoRows when the department row does not exist.
func (s *Stats) Department(ctx context.Context, department models.Department) (models.DepartmentStats, error) {
	var stats models.DepartmentStats
	err := sqlx.GetContext(ctx, s.db, &stats, departmentStatsQuery+`
WHERE d.department = $1
GROUP BY d.department, d.admin_id, u.email`, department)
	return stats, err
}

func (s *Stats) AllDepartments(ctx context.Context) ([]models.DepartmentStats, error) {
	items := []models.DepartmentStats{}
	err := sqlx.SelectContext(ctx, s.db, &items, departmentStatsQuery+`
GROUP BY d.department, d.admin_id, u.email
ORDER BY d.department`)
	return items, err
}

const adminStatsQuery = `
SELECT a.id AS admin_id, a.department, u.email,` + statusCountColumns + `,
  COALESCE(AVG(r.rating), 0)::float8 AS avg_rating,
  COUNT(*) FILTER (WHERE r.resolved_by = a.id) AS resolved_personally,
  COUNT(*) FILTER (WHERE r.validated_by = a.id AND r.resolved_by IS DISTINCT FROM a.id) AS validated_only,
  COUNT(DISTINCT r.category) AS categories_handled
FROM administrators a
LEFT JOIN users u ON u.id = a.id
LEFT JOIN reports r ON r.validated_by = a.id OR r.resolved_by = a.id`

// Admin returns sql.ErrNoRows when the administrator does not exist.
func (s *Stats) Admin(ctx context.Context, adminID int64) (models.AdminStats, error) {
	var stats models.AdminStats
	err := sqlx.GetContext(ctx, s.db, &stats, adminStatsQuery+`
WHERE a.id = $1
GROUP BY a.id, a.department, u.email`, adminID)
	return stats, err
}

func (s *Stats) AllAdmins(ctx context.Context) ([]models.AdminStats, error) {
	items := []models.AdminStats{}
	err := sqlx.SelectContext(ctx, s.db, &items, adminStatsQuery+`
GROUP BY a.id, a.department, u.email
ORDER BY a.id`)
	return items, err
}

// User returns sql.ErrNoRows when the user does not exist. Each figure comes
// from its own subquery so the pinned and report joins cannot inflate each other.
func (s *Stats) User(ctx context.Context, userID int64) (models.UserStats, error) {
	var stats models.UserStats
	err := sqlx.GetContext(ctx, s.db, &stats, `
SELECT u.id AS user_id, u.email, u.created_at, u.total_reports,
  rs.live_reports, rs.open_reports, rs.in_progress_reports, rs.resolved_reports, rs.denied_reports,
  rs.avg_rating_given, rs.last_report_at,
  (SELECT COUNT(*) FROM pinned_reports p WHERE p.user_id = u.id) AS pinned_reports_count
FROM users u
CROSS JOIN LATERAL (
  SELECT
    COUNT(*) AS live_reports,
    COUNT(*) FILTER (WHERE r.status = 'open') AS open_reports,
    COUNT(*) FILTER (WHERE r.status = 'in_progress') AS in_progress_reports,
    COUNT(*) FILTER (WHERE r.status = 'resolved') AS resolved_reports,
    COUNT(*) FILTER (WHERE r.status = 'denied') AS denied_reports,
    COALESCE(AVG(r.rating), 0)::float8 AS avg_rating_given,
    MAX(r.created_at) AS last_report_at
  FROM reports r
  WHERE r.created_by = u.id
) rs
WHERE u.id = $1`, userID)
	return stats, err
}

// Performance reports per-administrator throughput over reports created in the
// last days days.
func (s *Stats) Performance(ctx context.Context, days int) ([]models.AdminPerformance, error) {
	items := []models.AdminPerformance{}
	err := sqlx.SelectContext(ctx, s.db, &items, `
SELECT a.id, a.department, u.email,
  COUNT(r.id) AS reports_handled,
  COUNT(*) FILTER (WHERE r.status = 'resolved') AS reports_resolved,
  COUNT(*) FILTER (WHERE r.resolved_by = a.id) AS personally_resolved,
  COALESCE(AVG(r.rating), 0)::float8 AS avg_rating,
  COUNT(DISTINCT r.category) AS categories_handled
FROM administrators a
LEFT JOIN users u ON u.id = a.id
LEFT JOIN reports r ON (r.validated_by = a.id OR r.resolved_by = a.id)
  AND r.created_at >= now() - make_interval(days => $1)
GROUP BY a.id, a.department, u.email
ORDER BY reports_handled DESC, a.id`, days)
	return items, err
}

func (s *Stats) Dashboard(ctx context.Context) (models.Dashboard, error) {
	dash := models.Dashboard{
		RecentReports: []models.RecentReport{},
		CategoryStats: []models.CategoryCount{},
		StatusStats:   []models.StatusCount{},
	}
	if err := sqlx.SelectContext(ctx, s.db, &dash.RecentReports, `
SELECT id, title, status, category, created_at
FROM reports
ORDER BY created_at DESC, id DESC
LIMIT 10`); err != nil {
		return models.Dashboard{}, err
	}
	if err := sqlx.SelectContext(ctx, s.db, &dash.CategoryStats, `
SELECT category, COUNT(*) AS total, COUNT(*) FILTER (WHERE status = 'resolved') AS resolved
FROM reports
GROUP BY category
ORDER BY category`); err != nil {
		return models.Dashboard{}, err
	}
	if err := sqlx.SelectContext(ctx, s.db, &dash.StatusStats, `
SELECT status, COUNT(*) AS count
FROM reports
GROUP BY status
ORDER BY status`); err != nil {
		return models.Dashboard{}, err
	}
	return dash, nil
}

// Summary collects the global leaderboards, each capped at top entries.
func (s *Stats) Summary(ctx context.Context, top int) (models.Summary, error) {
	summary := models.Summary{
		TopDepartmentsResolved: []models.DepartmentCount{},
		TopUsersReports:        []models.RankedCount{},
		TopAdminsValidated:     []models.RankedCount{},
		TopAdminsResolved:      []models.RankedCount{},
	}
	if err := sqlx.GetContext(ctx, s.db, &summary.AvgResolutionDays, `
SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 86400.0), 0)::float8
FROM reports
WHERE status = 'resolved' AND resolved_at IS NOT NULL`); err != nil {
		return models.Summary{}, err
	}
	if err := sqlx.SelectContext(ctx, s.db, &summary.TopDepartmentsResolved, `
SELECT a.department, COUNT(*) AS count
FROM reports r
JOIN administrators a ON a.id = r.resolved_by
WHERE r.status = 'resolved'
GROUP BY a.department
ORDER BY count DESC, a.department
LIMIT $1`, top); err != nil {
		return models.Summary{}, err
	}
	if err := sqlx.SelectContext(ctx, s.db, &summary.TopUsersReports, `
SELECT created_by AS id, COUNT(*) AS count
FROM reports
GROUP BY created_by
ORDER BY count DESC, created_by
LIMIT $1`, top); err != nil {
		return models.Summary{}, err
	}
	if err := sqlx.SelectContext(ctx, s.db, &summary.TopAdminsValidated, `
SELECT validated_by AS id, COUNT(*) AS count
FROM reports
WHERE validated_by IS NOT NULL
GROUP BY validated_by
ORDER BY count DESC, validated_by
LIMIT $1`, top); err != nil {
		return models.Summary{}, err
	}
	if err := sqlx.SelectContext(ctx, s.db, &summary.TopAdminsResolved, `
SELECT resolved_by AS id, COUNT(*) AS count
FROM reports
WHERE status = 'resolved' AND resolved_by IS NOT NULL
GROUP BY resolved_by
ORDER BY count DESC, resolved_by
LIMIT $1`, top); err != nil {
		return models.Summary{}, err
	}
	return summary, nil
}
