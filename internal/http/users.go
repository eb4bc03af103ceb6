package httpapi

import (
	"context"
	"net/http"

	"civicreport-backend-go/internal/models"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Admin    bool   `json:"admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := s.Users.List(r.Context(), s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "users", page)
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	user, err := s.Users.Create(r.Context(), req.Email, req.Password, req.Admin)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, user)
}

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	user, err := s.Users.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Me returns the account behind the bearer token.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := CurrentClaims(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := s.Users.Get(r.Context(), claims.UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

func (s *Server) UserPinnedReports(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.Pins.ListByUser(r.Context(), &id, s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "pinned_reports", page)
}

type userFlagFunc func(ctx context.Context, id int64) (models.User, error)

func (s *Server) SuspendUser(w http.ResponseWriter, r *http.Request) {
	s.userFlag(w, r, s.Users.Suspend)
}

func (s *Server) UnsuspendUser(w http.ResponseWriter, r *http.Request) {
	s.userFlag(w, r, s.Users.Unsuspend)
}

func (s *Server) PinUser(w http.ResponseWriter, r *http.Request) {
	s.userFlag(w, r, s.Users.Pin)
}

func (s *Server) UnpinUser(w http.ResponseWriter, r *http.Request) {
	s.userFlag(w, r, s.Users.Unpin)
}

func (s *Server) userFlag(w http.ResponseWriter, r *http.Request, apply userFlagFunc) {
	id, err := pathID(r, "userId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	user, err := apply(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	result, err := s.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// Logout is stateless; clients drop the access token.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}
