package services

import (
	"context"

	"civicreport-backend-go/internal/models"
	"civicreport-backend-go/internal/store"

	"github.com/jmoiron/sqlx"
)

type PinService struct {
	Pins    *store.Pins
	Reports *store.Reports
}

func NewPinService(database *sqlx.DB) *PinService {
	return &PinService{Pins: store.NewPins(database), Reports: store.NewReports(database)}
}

func (s *PinService) Pin(ctx context.Context, userID, reportID *int64) (models.PinnedReport, error) {
	if userID == nil || reportID == nil {
		return models.PinnedReport{}, ErrValidation("user_id and report_id are required")
	}
	exists, err := s.Reports.Exists(ctx, *reportID)
	if err != nil {
		return models.PinnedReport{}, classifyStoreError("check report", err, reportNotFound)
	}
	if !exists {
		return models.PinnedReport{}, ErrNotFound(reportNotFound)
	}
	pin, err := s.Pins.Insert(ctx, *userID, *reportID)
	if err != nil {
		err = classifyStoreError("pin report", err, reportNotFound)
		if KindOf(err) == KindConflict {
			return models.PinnedReport{}, ErrConflict("Report already pinned")
		}
		return models.PinnedReport{}, err
	}
	return pin, nil
}

func (s *PinService) Unpin(ctx context.Context, userID *int64, reportID int64) error {
	if userID == nil {
		return ErrValidation("Missing user_id")
	}
	removed, err := s.Pins.Delete(ctx, *userID, reportID)
	if err != nil {
		return classifyStoreError("unpin report", err, "Pinned report not found")
	}
	if !removed {
		return ErrNotFound("Pinned report not found")
	}
	return nil
}

func (s *PinService) ListByUser(ctx context.Context, userID *int64, page PageRequest) (Paged[models.PinnedReportDetail], error) {
	if userID == nil {
		return Paged[models.PinnedReportDetail]{}, ErrValidation("Missing user_id")
	}
	items, err := s.Pins.ListByUser(ctx, *userID, page.window())
	if err != nil {
		return Paged[models.PinnedReportDetail]{}, classifyStoreError("list pinned reports", err, "Pinned report not found")
	}
	total, err := s.Pins.CountByUser(ctx, *userID)
	if err != nil {
		return Paged[models.PinnedReportDetail]{}, classifyStoreError("count pinned reports", err, "Pinned report not found")
	}
	return newPaged(items, total, page), nil
}

func (s *PinService) IsPinned(ctx context.Context, userID, reportID int64) (bool, error) {
	pinned, err := s.Pins.Exists(ctx, userID, reportID)
	if err != nil {
		return false, classifyStoreError("check pinned report", err, "Pinned report not found")
	}
	return pinned, nil
}
