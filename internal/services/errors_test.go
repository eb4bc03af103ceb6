package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStoreError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"no rows", sql.ErrNoRows, KindNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, KindValidation},
		{"check", &pgconn.PgError{Code: "23514"}, KindValidation},
		{"numeric out of range", &pgconn.PgError{Code: "22003"}, KindValidation},
		{"datetime overflow", &pgconn.PgError{Code: "22008"}, KindValidation},
		{"other pg", &pgconn.PgError{Code: "57P01"}, KindStorage},
		{"plain", errors.New("connection refused"), KindStorage},
		{"already classified", ErrConflict("dup"), KindConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyStoreError("test", tc.err, "missing")
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}
}

func TestStorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := classifyStoreError("get report", cause, "Report not found")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "get report: boom", err.Error())
}

func TestKindOfUnknownIsStorage(t *testing.T) {
	assert.Equal(t, KindStorage, KindOf(errors.New("x")))
	assert.Equal(t, KindNotFound, KindOf(ErrNotFound("Report not found")))
}
