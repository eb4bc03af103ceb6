package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type DepartmentAdminRequest struct {
	AdminID *int64 `json:"admin_id" validate:"omitempty,dbid"`
}

func (s *Server) ListDepartments(w http.ResponseWriter, r *http.Request) {
	items, err := s.Departments.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) GetDepartment(w http.ResponseWriter, r *http.Request) {
	item, err := s.Departments.Get(r.Context(), chi.URLParam(r, "department"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// UpdateDepartmentRequest keeps admin_id raw so an absent key can be told apart
// from an explicit null.
type UpdateDepartmentRequest struct {
	AdminID json.RawMessage `json:"admin_id"`
}

// UpdateDepartment overwrites the assigned administrator; only an explicit
// "admin_id": null clears it.
func (s *Server) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req UpdateDepartmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	adminID, err := nullableID(req.AdminID, "admin_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	item, err := s.Departments.Update(r.Context(), chi.URLParam(r, "department"), adminID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (s *Server) GetDepartmentAdmin(w http.ResponseWriter, r *http.Request) {
	item, err := s.Departments.Get(r.Context(), chi.URLParam(r, "department"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"department":  item.Department,
		"admin_id":    item.AdminID,
		"admin_email": item.AdminEmail,
	})
}

func (s *Server) AssignDepartmentAdmin(w http.ResponseWriter, r *http.Request) {
	var req DepartmentAdminRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	item, err := s.Departments.AssignAdmin(r.Context(), chi.URLParam(r, "department"), req.AdminID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (s *Server) RemoveDepartmentAdmin(w http.ResponseWriter, r *http.Request) {
	item, err := s.Departments.RemoveAdmin(r.Context(), chi.URLParam(r, "department"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (s *Server) AvailableDepartments(w http.ResponseWriter, r *http.Request) {
	items, err := s.Departments.Available(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) DepartmentsByAdmin(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathID(r, "adminId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	items, err := s.Departments.ByAdmin(r.Context(), adminID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) CheckDepartmentAdmin(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathID(r, "adminId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	department := chi.URLParam(r, "department")
	assigned, err := s.Departments.CheckAssignment(r.Context(), department, adminID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"department": strings.ToUpper(department),
		"admin_id":   adminID,
		"assigned":   assigned,
	})
}
