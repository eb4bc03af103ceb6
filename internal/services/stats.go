package services

import (
	"context"
	"fmt"
	"strings"

	"civicreport-backend-go/internal/models"
	"civicreport-backend-go/internal/store"

	"github.com/jmoiron/sqlx"
)

// summaryTop caps every leaderboard in the global summary.
const summaryTop = 5

// StatsService computes read-only rollups; every call reads current table state.
type StatsService struct {
	Stats *store.Stats
}

func NewStatsService(database *sqlx.DB) *StatsService {
	return &StatsService{Stats: store.NewStats(database)}
}

func (s *StatsService) Overview(ctx context.Context) (models.OverviewStats, error) {
	stats, err := s.Stats.Overview(ctx)
	if err != nil {
		return models.OverviewStats{}, classifyStoreError("overview stats", err, "Stats not found")
	}
	return stats, nil
}

func (s *StatsService) Department(ctx context.Context, name string) (models.DepartmentStats, error) {
	department, err := parseDepartment(name)
	if err != nil {
		return models.DepartmentStats{}, err
	}
	stats, err := s.Stats.Department(ctx, department)
	if err != nil {
		return models.DepartmentStats{}, classifyStoreError("department stats", err, "Department not found")
	}
	return stats, nil
}

func (s *StatsService) AllDepartments(ctx context.Context) ([]models.DepartmentStats, error) {
	items, err := s.Stats.AllDepartments(ctx)
	if err != nil {
		return nil, classifyStoreError("all department stats", err, "Department not found")
	}
	return items, nil
}

// Admin returns zero counts for an administrator who has handled nothing.
func (s *StatsService) Admin(ctx context.Context, adminID int64) (models.AdminStats, error) {
	stats, err := s.Stats.Admin(ctx, adminID)
	if err != nil {
		return models.AdminStats{}, classifyStoreError("admin stats", err, "Administrator not found")
	}
	return stats, nil
}

func (s *StatsService) AllAdmins(ctx context.Context) ([]models.AdminStats, error) {
	items, err := s.Stats.AllAdmins(ctx)
	if err != nil {
		return nil, classifyStoreError("all admin stats", err, "Administrator not found")
	}
	return items, nil
}

func (s *StatsService) User(ctx context.Context, userID int64) (models.UserStats, error) {
	stats, err := s.Stats.User(ctx, userID)
	if err != nil {
		return models.UserStats{}, classifyStoreError("user stats", err, "User not found")
	}
	return stats, nil
}

// maxPerformanceDays keeps the window inside Postgres interval arithmetic.
const maxPerformanceDays = 36500

func (s *StatsService) Performance(ctx context.Context, days int) ([]models.AdminPerformance, error) {
	if days <= 0 {
		return nil, ErrValidation("Days must be a positive number")
	}
	if days > maxPerformanceDays {
		return nil, ErrValidation(fmt.Sprintf("Days must be at most %d", maxPerformanceDays))
	}
	items, err := s.Stats.Performance(ctx, days)
	if err != nil {
		return nil, classifyStoreError("performance report", err, "Administrator not found")
	}
	return items, nil
}

func (s *StatsService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	dash, err := s.Stats.Dashboard(ctx)
	if err != nil {
		return models.Dashboard{}, classifyStoreError("admin dashboard", err, "Stats not found")
	}
	return dash, nil
}

func (s *StatsService) Summary(ctx context.Context) (models.Summary, error) {
	summary, err := s.Stats.Summary(ctx, summaryTop)
	if err != nil {
		return models.Summary{}, classifyStoreError("global summary", err, "Stats not found")
	}
	return summary, nil
}

func parseDepartment(raw string) (models.Department, error) {
	department := models.Department(strings.ToUpper(strings.TrimSpace(raw)))
	if department == "" {
		return "", ErrValidation("Missing department")
	}
	if !department.Valid() {
		return "", ErrInvalidDepartment(raw)
	}
	return department, nil
}
