package services

import (
	"context"
	"strings"

	"civicreport-backend-go/internal/db"
	"civicreport-backend-go/internal/metrics"
	"civicreport-backend-go/internal/models"
	"civicreport-backend-go/internal/store"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type CreateReportInput struct {
	Title       string
	Description string
	Category    string
	LocationID  *int64
	ImageURL    *string
	UserID      *int64
}

type RatingStatus struct {
	ReportID int64               `json:"report_id"`
	Status   models.ReportStatus `json:"status"`
	Rating   *int                `json:"rating"`
	CanRate  bool                `json:"can_rate"`
}

type StatusOptions struct {
	Statuses   []models.ReportStatus `json:"statuses"`
	Categories []models.Category     `json:"categories"`
}

// ReportService owns every change to a report's status, attribution and rating.
type ReportService struct {
	DB                     *sqlx.DB
	Reports                *store.Reports
	Log                    *zap.Logger
	RatingRequiresResolved bool
}

func NewReportService(database *sqlx.DB, log *zap.Logger, ratingRequiresResolved bool) *ReportService {
	return &ReportService{
		DB:                     database,
		Reports:                store.NewReports(database),
		Log:                    log,
		RatingRequiresResolved: ratingRequiresResolved,
	}
}

const reportNotFound = "Report not found"

// Create inserts an open report and bumps the author's lifetime counter in one transaction.
func (s *ReportService) Create(ctx context.Context, in CreateReportInput) (models.Report, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return models.Report{}, ErrValidation("Title and description are required")
	}
	if in.UserID == nil {
		return models.Report{}, ErrValidation("User ID is required")
	}
	category := models.CategoryOther
	if raw := strings.TrimSpace(in.Category); raw != "" {
		category = models.Category(raw)
		if !category.Valid() {
			return models.Report{}, ErrInvalidCategory(raw)
		}
	}

	var report models.Report
	err := db.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		repo := store.NewReports(tx)
		// The counter bump doubles as the author existence check, ahead of the insert's FK.
		found, err := repo.IncrementUserReports(ctx, *in.UserID)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound("User not found")
		}
		report, err = repo.Insert(ctx, store.NewReport{
			Title:       title,
			Description: description,
			Category:    category,
			CreatedBy:   *in.UserID,
			LocationID:  in.LocationID,
			ImageURL:    in.ImageURL,
		})
		return err
	})
	if err != nil {
		return models.Report{}, classifyStoreError("create report", err, reportNotFound)
	}
	metrics.ReportsCreated.Inc()
	s.Log.Info("report created",
		zap.Int64("report_id", report.ID),
		zap.Int64("created_by", report.CreatedBy),
		zap.String("category", string(report.Category)))
	return report, nil
}

func (s *ReportService) Get(ctx context.Context, id int64) (models.Report, error) {
	report, err := s.Reports.Get(ctx, id)
	if err != nil {
		return models.Report{}, classifyStoreError("get report", err, reportNotFound)
	}
	return report, nil
}

func (s *ReportService) List(ctx context.Context, page PageRequest, sort string) (Paged[models.Report], error) {
	asc := false
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "", "desc":
	case "asc":
		asc = true
	default:
		return Paged[models.Report]{}, ErrValidation("Invalid sort order")
	}
	items, err := s.Reports.List(ctx, page.window(), asc)
	if err != nil {
		return Paged[models.Report]{}, classifyStoreError("list reports", err, reportNotFound)
	}
	total, err := s.Reports.Count(ctx)
	if err != nil {
		return Paged[models.Report]{}, classifyStoreError("count reports", err, reportNotFound)
	}
	return newPaged(items, total, page), nil
}

// Update applies a generic partial update. It does not enforce attribution or
// keep resolved_at in step with status; Validate, Resolve and ChangeStatus do.
func (s *ReportService) Update(ctx context.Context, id int64, patch models.ReportPatch) (models.Report, error) {
	if patch.Empty() {
		return models.Report{}, ErrValidation("Missing request data")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Report{}, ErrInvalidStatus(string(*patch.Status))
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return models.Report{}, ErrInvalidCategory(string(*patch.Category))
	}
	if patch.Rating != nil {
		if err := checkRating(*patch.Rating); err != nil {
			return models.Report{}, err
		}
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Report{}, ErrValidation("Title cannot be empty")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return models.Report{}, ErrValidation("Description cannot be empty")
	}
	report, err := s.Reports.Update(ctx, id, patch)
	if err != nil {
		return models.Report{}, classifyStoreError("update report", err, reportNotFound)
	}
	metrics.ReportTransitions.WithLabelValues("update").Inc()
	return report, nil
}

// Validate marks the report in progress under adminID. A later validation by
// another administrator overwrites validated_by.
func (s *ReportService) Validate(ctx context.Context, id int64, adminID *int64) (models.Report, error) {
	if adminID == nil {
		return models.Report{}, ErrValidation("Missing admin_id")
	}
	report, err := s.Reports.SetValidated(ctx, id, *adminID)
	if err != nil {
		return models.Report{}, classifyStoreError("validate report", err, reportNotFound)
	}
	metrics.ReportTransitions.WithLabelValues("validate").Inc()
	s.Log.Info("report validated", zap.Int64("report_id", id), zap.Int64("admin_id", *adminID))
	return report, nil
}

// Resolve closes the report under adminID; resolved_at comes from the database clock.
func (s *ReportService) Resolve(ctx context.Context, id int64, adminID *int64) (models.Report, error) {
	if adminID == nil {
		return models.Report{}, ErrValidation("Missing admin_id")
	}
	report, err := s.Reports.SetResolved(ctx, id, *adminID)
	if err != nil {
		return models.Report{}, classifyStoreError("resolve report", err, reportNotFound)
	}
	metrics.ReportTransitions.WithLabelValues("resolve").Inc()
	s.Log.Info("report resolved", zap.Int64("report_id", id), zap.Int64("admin_id", *adminID))
	return report, nil
}

func (s *ReportService) Rate(ctx context.Context, id int64, rating *int) (models.Report, error) {
	if rating == nil {
		return models.Report{}, ErrValidation("Missing rating")
	}
	if err := checkRating(*rating); err != nil {
		return models.Report{}, err
	}
	if s.RatingRequiresResolved {
		current, err := s.Reports.Get(ctx, id)
		if err != nil {
			return models.Report{}, classifyStoreError("get report", err, reportNotFound)
		}
		if current.Status != models.StatusResolved {
			return models.Report{}, ErrValidation("Report must be resolved before it can be rated")
		}
	}
	report, err := s.Reports.SetRating(ctx, id, *rating)
	if err != nil {
		return models.Report{}, classifyStoreError("rate report", err, reportNotFound)
	}
	metrics.ReportTransitions.WithLabelValues("rate").Inc()
	return report, nil
}

// ChangeStatus sets status directly while keeping resolved_at consistent with it.
func (s *ReportService) ChangeStatus(ctx context.Context, id int64, status string) (models.Report, error) {
	next := models.ReportStatus(strings.TrimSpace(status))
	if next == "" {
		return models.Report{}, ErrValidation("Missing status")
	}
	if !next.Valid() {
		return models.Report{}, ErrInvalidStatus(status)
	}
	report, err := s.Reports.SetStatus(ctx, id, next)
	if err != nil {
		return models.Report{}, classifyStoreError("change report status", err, reportNotFound)
	}
	metrics.ReportTransitions.WithLabelValues("status_" + string(next)).Inc()
	return report, nil
}

func (s *ReportService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.Reports.Delete(ctx, id)
	if err != nil {
		return classifyStoreError("delete report", err, reportNotFound)
	}
	if !deleted {
		return ErrNotFound(reportNotFound)
	}
	metrics.ReportTransitions.WithLabelValues("delete").Inc()
	s.Log.Info("report deleted", zap.Int64("report_id", id))
	return nil
}

func (s *ReportService) Search(ctx context.Context, query string, page PageRequest) (Paged[models.Report], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Paged[models.Report]{}, ErrValidation("Search query is required")
	}
	items, total, err := s.Reports.Search(ctx, query, page.window())
	if err != nil {
		return Paged[models.Report]{}, classifyStoreError("search reports", err, reportNotFound)
	}
	return newPaged(items, total, page), nil
}

func (s *ReportService) Filter(ctx context.Context, status, category string, page PageRequest) (Paged[models.Report], error) {
	var statusFilter *models.ReportStatus
	if raw := strings.TrimSpace(status); raw != "" {
		value := models.ReportStatus(raw)
		if !value.Valid() {
			return Paged[models.Report]{}, ErrInvalidStatus(raw)
		}
		statusFilter = &value
	}
	var categoryFilter *models.Category
	if raw := strings.TrimSpace(category); raw != "" {
		value := models.Category(raw)
		if !value.Valid() {
			return Paged[models.Report]{}, ErrInvalidCategory(raw)
		}
		categoryFilter = &value
	}
	items, total, err := s.Reports.Filter(ctx, statusFilter, categoryFilter, page.window())
	if err != nil {
		return Paged[models.Report]{}, classifyStoreError("filter reports", err, reportNotFound)
	}
	return newPaged(items, total, page), nil
}

func (s *ReportService) ByUser(ctx context.Context, userID int64, page PageRequest) (Paged[models.Report], error) {
	items, total, err := s.Reports.ByUser(ctx, userID, page.window())
	if err != nil {
		return Paged[models.Report]{}, classifyStoreError("list user reports", err, reportNotFound)
	}
	return newPaged(items, total, page), nil
}

func (s *ReportService) Pending(ctx context.Context, page PageRequest) (Paged[models.Report], error) {
	items, total, err := s.Reports.Pending(ctx, page.window())
	if err != nil {
		return Paged[models.Report]{}, classifyStoreError("list pending reports", err, reportNotFound)
	}
	return newPaged(items, total, page), nil
}

func (s *ReportService) Assigned(ctx context.Context, adminID *int64, page PageRequest) (Paged[models.Report], error) {
	if adminID == nil {
		return Paged[models.Report]{}, ErrValidation("Missing admin_id")
	}
	items, total, err := s.Reports.Assigned(ctx, *adminID, page.window())
	if err != nil {
		return Paged[models.Report]{}, classifyStoreError("list assigned reports", err, reportNotFound)
	}
	return newPaged(items, total, page), nil
}

// RatingStatus tells a client whether the report can be rated now. When userID
// is given only the report's author may rate it.
func (s *ReportService) RatingStatus(ctx context.Context, id int64, userID *int64) (RatingStatus, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return RatingStatus{}, err
	}
	canRate := report.Rating == nil
	if s.RatingRequiresResolved && report.Status != models.StatusResolved {
		canRate = false
	}
	if userID != nil && *userID != report.CreatedBy {
		canRate = false
	}
	return RatingStatus{ReportID: report.ID, Status: report.Status, Rating: report.Rating, CanRate: canRate}, nil
}

func (s *ReportService) StatusOptions() StatusOptions {
	return StatusOptions{Statuses: models.ReportStatuses, Categories: models.Categories}
}

func checkRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrValidation("Rating must be between 1 and 5")
	}
	return nil
}
