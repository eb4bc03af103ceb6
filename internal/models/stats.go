package models

import "time"

// StatusCounts is the per-status breakdown shared by every rollup.
type StatusCounts struct {
	Total      int `db:"total_reports" json:"total_reports"`
	Open       int `db:"open_reports" json:"open_reports"`
	InProgress int `db:"in_progress_reports" json:"in_progress_reports"`
	Resolved   int `db:"resolved_reports" json:"resolved_reports"`
	Denied     int `db:"denied_reports" json:"denied_reports"`
}

type OverviewStats struct {
	StatusCounts
	UniqueReporters int     `db:"unique_reporters" json:"unique_reporters"`
	AvgRating       float64 `db:"avg_rating" json:"avg_rating"`
	RatedReports    int     `db:"rated_reports" json:"rated_reports"`
}

type DepartmentStats struct {
	Department Department `db:"department" json:"department"`
	AdminID    *int64     `db:"admin_id" json:"admin_id"`
	AdminEmail *string    `db:"admin_email" json:"admin_email"`
	OverviewStats
}

type AdminStats struct {
	AdminID    int64      `db:"admin_id" json:"admin_id"`
	Department Department `db:"department" json:"department"`
	Email      *string    `db:"email" json:"email"`
	StatusCounts
	AvgRating          float64 `db:"avg_rating" json:"avg_rating"`
	ResolvedPersonally int     `db:"resolved_personally" json:"resolved_personally"`
	ValidatedOnly      int     `db:"validated_only" json:"validated_only"`
	CategoriesHandled  int     `db:"categories_handled" json:"categories_handled"`
}

type UserStats struct {
	UserID       int64      `db:"user_id" json:"user_id"`
	Email        string     `db:"email" json:"email"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	TotalReports int        `db:"total_reports" json:"total_reports"`
	LiveReports  int        `db:"live_reports" json:"live_reports"`
	Open         int        `db:"open_reports" json:"open_reports"`
	InProgress   int        `db:"in_progress_reports" json:"in_progress_reports"`
	Resolved     int        `db:"resolved_reports" json:"resolved_reports"`
	Denied       int        `db:"denied_reports" json:"denied_reports"`
	PinnedCount  int        `db:"pinned_reports_count" json:"pinned_reports_count"`
	AvgRating    float64    `db:"avg_rating_given" json:"avg_rating_given"`
	LastReportAt *time.Time `db:"last_report_at" json:"last_report_at"`
}

type AdminPerformance struct {
	AdminID            int64      `db:"id" json:"id"`
	Department         Department `db:"department" json:"department"`
	Email              *string    `db:"email" json:"email"`
	ReportsHandled     int        `db:"reports_handled" json:"reports_handled"`
	ReportsResolved    int        `db:"reports_resolved" json:"reports_resolved"`
	PersonallyResolved int        `db:"personally_resolved" json:"personally_resolved"`
	AvgRating          float64    `db:"avg_rating" json:"avg_rating"`
	CategoriesHandled  int        `db:"categories_handled" json:"categories_handled"`
}

type RecentReport struct {
	ID        int64        `db:"id" json:"id"`
	Title     string       `db:"title" json:"title"`
	Status    ReportStatus `db:"status" json:"status"`
	Category  Category     `db:"category" json:"category"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

type CategoryCount struct {
	Category Category `db:"category" json:"category"`
	Total    int      `db:"total" json:"total"`
	Resolved int      `db:"resolved" json:"resolved"`
}

type StatusCount struct {
	Status ReportStatus `db:"status" json:"status"`
	Count  int          `db:"count" json:"count"`
}

type Dashboard struct {
	RecentReports []RecentReport  `json:"recent_reports"`
	CategoryStats []CategoryCount `json:"category_stats"`
	StatusStats   []StatusCount   `json:"status_stats"`
}

type RankedCount struct {
	ID    int64 `db:"id" json:"id"`
	Count int   `db:"count" json:"count"`
}

type DepartmentCount struct {
	Department Department `db:"department" json:"department"`
	Count      int        `db:"count" json:"count"`
}

type Summary struct {
	AvgResolutionDays      float64           `json:"avg_resolution_days"`
	TopDepartmentsResolved []DepartmentCount `json:"top_departments_resolved"`
	TopUsersReports        []RankedCount     `json:"top_users_reports"`
	TopAdminsValidated     []RankedCount     `json:"top_admins_validated"`
	TopAdminsResolved      []RankedCount     `json:"top_admins_resolved"`
}
