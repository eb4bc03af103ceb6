package services

import (
	"database/sql"
	"errors"
	"fmt"

	"civicreport-backend-go/internal/metrics"

	"github.com/jackc/pgx/v5/pgconn"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "storage"
	}
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e ServiceError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, treating anything unclassified as a storage failure.
func KindOf(err error) ErrorKind {
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindStorage
}

func ErrValidation(msg string) error {
	return ServiceError{Kind: KindValidation, Message: msg}
}

func ErrNotFound(msg string) error {
	return ServiceError{Kind: KindNotFound, Message: msg}
}

func ErrConflict(msg string) error {
	return ServiceError{Kind: KindConflict, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Kind: KindUnauthorized, Message: msg}
}

func ErrForbidden(msg string) error {
	return ServiceError{Kind: KindForbidden, Message: msg}
}

func ErrStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return ServiceError{Kind: KindStorage, Message: op, Err: err}
}

func ErrInvalidCategory(category string) error {
	return ErrValidation(fmt.Sprintf("Invalid category %q", category))
}

func ErrInvalidStatus(status string) error {
	return ErrValidation(fmt.Sprintf("Invalid status %q", status))
}

func ErrInvalidDepartment(department string) error {
	return ErrValidation(fmt.Sprintf("Invalid department %q", department))
}

// classifyStoreError maps a repository error onto the service taxonomy.
// notFound is used as the message when the row is missing.
func classifyStoreError(op string, err error, notFound string) error {
	if err == nil {
		return nil
	}
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound(notFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ServiceError{Kind: KindConflict, Message: "Resource already exists", Err: err}
		case "23503":
			return ServiceError{Kind: KindValidation, Message: "Referenced resource does not exist", Err: err}
		case "23514", "22P02", "22003", "22008":
			return ServiceError{Kind: KindValidation, Message: "Invalid value", Err: err}
		}
	}
	metrics.StorageErrors.WithLabelValues(op).Inc()
	return ErrStorage(op, err)
}
