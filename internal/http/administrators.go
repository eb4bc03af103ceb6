package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CreateAdministratorRequest struct {
	UserID     *int64 `json:"user_id" validate:"omitempty,dbid"`
	Department string `json:"department"`
}

type UpdateAdministratorRequest struct {
	Department string `json:"department"`
}

type AdminCheckResponse struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
}

func (s *Server) ListAdministrators(w http.ResponseWriter, r *http.Request) {
	page, err := s.Administrators.List(r.Context(), s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "administrators", page)
}

func (s *Server) CreateAdministrator(w http.ResponseWriter, r *http.Request) {
	var req CreateAdministratorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	admin, err := s.Administrators.Create(r.Context(), req.UserID, req.Department)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, admin)
}

func (s *Server) GetAdministrator(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "adminId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	admin, err := s.Administrators.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, admin)
}

func (s *Server) UpdateAdministrator(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "adminId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req UpdateAdministratorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	admin, err := s.Administrators.Update(r.Context(), id, req.Department)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, admin)
}

func (s *Server) DeleteAdministrator(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "adminId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Administrators.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdministratorsByDepartment(w http.ResponseWriter, r *http.Request) {
	items, err := s.Administrators.ByDepartment(r.Context(), chi.URLParam(r, "department"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) AvailableAdministrators(w http.ResponseWriter, r *http.Request) {
	items, err := s.Administrators.Available(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) CheckAdministrator(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	isAdmin, err := s.Administrators.IsAdmin(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, AdminCheckResponse{UserID: userID, IsAdmin: isAdmin})
}
