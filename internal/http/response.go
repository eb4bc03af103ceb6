package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"civicreport-backend-go/internal/services"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Message string `json:"error_msg"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// writePage renders a page under key together with the pagination totals.
func writePage[T any](w http.ResponseWriter, key string, page services.Paged[T]) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		key:           page.Items,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
		"totalCount":  page.TotalCount,
	})
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// fail is the single place service errors become HTTP responses.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := services.KindOf(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		s.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err))
		WriteError(w, status, "Internal server error")
		return
	}
	message := err.Error()
	var svcErr services.ServiceError
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}
	WriteError(w, status, message)
}
