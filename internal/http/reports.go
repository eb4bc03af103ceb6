package httpapi

import (
	"context"
	"net/http"

	"civicreport-backend-go/internal/models"
	"civicreport-backend-go/internal/services"
)

type CreateReportRequest struct {
	Title       string  `json:"title" validate:"max=255"`
	Description string  `json:"description" validate:"max=5000"`
	Category    string  `json:"category"`
	LocationID  *int64  `json:"location_id" validate:"omitempty,dbid"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	UserID      *int64  `json:"user_id" validate:"omitempty,dbid"`
}

type AdminActionRequest struct {
	AdminID *int64 `json:"admin_id" validate:"omitempty,dbid"`
}

type RateRequest struct {
	Rating *int `json:"rating"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ReportRatingResponse struct {
	ReportID int64 `json:"report_id"`
	Rating   *int  `json:"rating"`
}

func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	page, err := s.Reports.List(r.Context(), s.pageRequest(r), r.URL.Query().Get("sort"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "reports", page)
}

func (s *Server) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.Reports.Create(r.Context(), services.CreateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		LocationID:  req.LocationID,
		ImageURL:    req.ImageURL,
		UserID:      req.UserID,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, report)
}

func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.Reports.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) UpdateReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var patch models.ReportPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.Reports.Update(r.Context(), id, patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Reports.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ValidateReport(w http.ResponseWriter, r *http.Request) {
	s.adminAction(w, r, s.Reports.Validate)
}

func (s *Server) ResolveReport(w http.ResponseWriter, r *http.Request) {
	s.adminAction(w, r, s.Reports.Resolve)
}

type adminActionFunc func(ctx context.Context, id int64, adminID *int64) (models.Report, error)

func (s *Server) adminAction(w http.ResponseWriter, r *http.Request, action adminActionFunc) {
	id, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req AdminActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := action(r.Context(), id, req.AdminID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) RateReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req RateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.Reports.Rate(r.Context(), id, req.Rating)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) ChangeReportStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req StatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.Reports.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) ReportRating(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.Reports.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ReportRatingResponse{ReportID: report.ID, Rating: report.Rating})
}

func (s *Server) ReportRatingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	userID, err := queryID(r, "user_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	status, err := s.Reports.RatingStatus(r.Context(), id, userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}

func (s *Server) ReportStatusOptions(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.Reports.StatusOptions())
}

func (s *Server) SearchReports(w http.ResponseWriter, r *http.Request) {
	page, err := s.Reports.Search(r.Context(), r.URL.Query().Get("q"), s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "reports", page)
}

func (s *Server) FilterReports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := s.Reports.Filter(r.Context(), query.Get("status"), query.Get("category"), s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "reports", page)
}

func (s *Server) ReportsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.Reports.ByUser(r.Context(), userID, s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "reports", page)
}
