package httpapi

import (
	"net/http"
)

type PinRequest struct {
	UserID   *int64 `json:"user_id" validate:"omitempty,dbid"`
	ReportID *int64 `json:"report_id" validate:"omitempty,dbid"`
}

type PinCheckResponse struct {
	UserID   int64 `json:"user_id"`
	ReportID int64 `json:"report_id"`
	IsPinned bool  `json:"is_pinned"`
}

func (s *Server) ListPinnedReports(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "user_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.Pins.ListByUser(r.Context(), userID, s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "pinned_reports", page)
}

func (s *Server) PinReport(w http.ResponseWriter, r *http.Request) {
	var req PinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	pin, err := s.Pins.Pin(r.Context(), req.UserID, req.ReportID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, pin)
}

// UnpinReport takes the user from ?user_id= so DELETE needs no body.
func (s *Server) UnpinReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	userID, err := queryID(r, "user_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Pins.Unpin(r.Context(), userID, reportID); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) CheckPinnedReport(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	reportID, err := pathID(r, "reportId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pinned, err := s.Pins.IsPinned(r.Context(), userID, reportID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, PinCheckResponse{UserID: userID, ReportID: reportID, IsPinned: pinned})
}
