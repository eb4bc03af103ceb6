package httpapi

import (
	"net/http"

	"civicreport-backend-go/internal/services"
)

type IndexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, IndexResponse{Name: "civicreport", Version: services.Version, Status: "running"})
}

// SystemHealth answers 503 when the database cannot be reached.
func (s *Server) SystemHealth(w http.ResponseWriter, r *http.Request) {
	health := s.Health.Check(r.Context())
	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, health)
}
