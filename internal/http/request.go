package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"civicreport-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("dbid", func(fl validator.FieldLevel) bool {
		id := fl.Field().Int()
		return id >= 1 && id <= math.MaxInt32
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads the body into dst and runs its validate tags. An empty
// body decodes to the zero value so the service can report what is missing.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return services.ErrValidation("Invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return services.ErrValidation("Invalid request")
	}
	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return services.ErrValidation(fmt.Sprintf("Missing %s", field))
	case "dbid":
		return services.ErrValidation(fmt.Sprintf("Invalid %s", field))
	case "email":
		return services.ErrValidation(fmt.Sprintf("%s must be a valid email address", field))
	case "url":
		return services.ErrValidation(fmt.Sprintf("%s must be a valid URL", field))
	case "min":
		return services.ErrValidation(fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
	case "max":
		return services.ErrValidation(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	default:
		return services.ErrValidation(fmt.Sprintf("%s is invalid", field))
	}
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func (s *Server) pageRequest(r *http.Request) services.PageRequest {
	query := r.URL.Query()
	limit := parseInt(query.Get("limit"), s.Config.DefaultPageSize)
	if s.Config.MaxPageSize > 0 && limit > s.Config.MaxPageSize {
		limit = s.Config.MaxPageSize
	}
	return services.PageRequest{Page: parseInt(query.Get("page"), 1), Limit: limit}
}

func pathID(r *http.Request, key string) (int64, error) {
	value, err := parseID(chi.URLParam(r, key))
	if err != nil {
		return 0, services.ErrValidation("Invalid " + idLabel(key))
	}
	return value, nil
}

// queryID parses an optional numeric query parameter; absent yields nil.
func queryID(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := parseID(raw)
	if err != nil {
		return nil, services.ErrValidation("Invalid " + key)
	}
	return &value, nil
}

// nullableID requires the key to be present; JSON null yields nil.
func nullableID(raw json.RawMessage, key string) (*int64, error) {
	if len(raw) == 0 {
		return nil, services.ErrValidation("Missing " + key)
	}
	if string(raw) == "null" {
		return nil, nil
	}
	value, err := parseID(string(raw))
	if err != nil {
		return nil, services.ErrValidation("Invalid " + key)
	}
	return &value, nil
}

// parseID accepts the positive range of the INTEGER key columns.
func parseID(raw string) (int64, error) {
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, errors.New("id must be positive")
	}
	return value, nil
}

func queryFloat(r *http.Request, key string, required bool) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		if required {
			return 0, services.ErrValidation("Missing " + key)
		}
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, services.ErrValidation("Invalid " + key)
	}
	return value, nil
}

func idLabel(key string) string {
	switch key {
	case "reportId":
		return "report id"
	case "userId":
		return "user id"
	case "adminId":
		return "administrator id"
	case "locationId":
		return "location id"
	default:
		return key
	}
}
