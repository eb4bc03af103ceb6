package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"civicreport-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

const defaultPerformanceDays = 30

func (s *Server) OverviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Stats.Overview(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) SummaryStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.Stats.Summary(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) DepartmentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Stats.Department(r.Context(), chi.URLParam(r, "department"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) AllDepartmentStats(w http.ResponseWriter, r *http.Request) {
	items, err := s.Stats.AllDepartments(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) AdminStats(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathID(r, "adminId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	stats, err := s.Stats.Admin(r.Context(), adminID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) AllAdminStats(w http.ResponseWriter, r *http.Request) {
	items, err := s.Stats.AllAdmins(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	stats, err := s.Stats.User(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) AdministratorPerformance(w http.ResponseWriter, r *http.Request) {
	days := defaultPerformanceDays
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.fail(w, r, services.ErrValidation("Invalid days"))
			return
		}
		days = parsed
	}
	items, err := s.Stats.Performance(r.Context(), days)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"days":           days,
		"administrators": items,
	})
}

func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.Stats.Dashboard(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dash)
}

func (s *Server) PendingReports(w http.ResponseWriter, r *http.Request) {
	page, err := s.Reports.Pending(r.Context(), s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "reports", page)
}

func (s *Server) AssignedReports(w http.ResponseWriter, r *http.Request) {
	adminID, err := queryID(r, "admin_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.Reports.Assigned(r.Context(), adminID, s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "reports", page)
}
