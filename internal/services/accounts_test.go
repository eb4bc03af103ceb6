package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var userColumns = []string{"id", "email", "password", "admin", "suspended", "pinned", "created_at", "total_reports"}

func testTokens() TokenService {
	return TokenService{Secret: []byte("test-secret"), Issuer: "civicreport", AccessTTL: time.Hour}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := testTokens()
	signed, exp, err := tokens.CreateAccessToken(7, "ana@city.test", true)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	claims, err := tokens.ParseAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.True(t, claims.Admin)

	other := tokens
	other.Secret = []byte("different")
	_, err = other.ParseAccessToken(signed)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	tokens := testTokens()
	hash, err := tokens.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, tokens.VerifyPassword("correct horse", hash))
	assert.False(t, tokens.VerifyPassword("wrong horse", hash))
	assert.False(t, tokens.VerifyPassword("x", "$argon2id$broken"))
}

func TestLoginRefusesSuspendedUser(t *testing.T) {
	db, mock := newMockDB(t)
	tokens := testTokens()
	svc := NewUserService(db, tokens, zap.NewNop())
	hash, err := tokens.HashPassword("password123")
	require.NoError(t, err)

	mock.ExpectQuery("FROM users WHERE lower\\(email\\)").
		WithArgs("ana@city.test").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(7), "ana@city.test", hash, false, true, false, time.Now(), 0))
	_, err = svc.Login(context.Background(), "Ana@City.test", "password123")
	assert.Equal(t, KindForbidden, KindOf(err))

	mock.ExpectQuery("FROM users WHERE lower\\(email\\)").
		WithArgs("ana@city.test").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(7), "ana@city.test", hash, false, false, false, time.Now(), 0))
	_, err = svc.Login(context.Background(), "ana@city.test", "nope")
	assert.Equal(t, KindUnauthorized, KindOf(err))

	mock.ExpectQuery("FROM users WHERE lower\\(email\\)").
		WithArgs("ana@city.test").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(7), "ana@city.test", hash, true, false, false, time.Now(), 0))
	result, err := svc.Login(context.Background(), "ana@city.test", "password123")
	require.NoError(t, err)
	claims, err := tokens.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, testTokens(), zap.NewNop())
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Create(context.Background(), "ana@city.test", "password123", false)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.EqualError(t, err, "User with this email already exists")
}

func TestCreateAdministratorConflict(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdministratorService(db, zap.NewNop())
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), int64Ptr(7), "DTOP")
	assert.Equal(t, KindConflict, KindOf(err))
	assert.EqualError(t, err, "Administrator already exists for this user")
}

func TestCreateAdministratorPromotesUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdministratorService(db, zap.NewNop())
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(7), "ana@city.test", "h", false, false, false, time.Now(), 0))
	mock.ExpectQuery("INSERT INTO administrators").
		WithArgs(int64(7), "LUMA").
		WillReturnRows(sqlmock.NewRows([]string{"id", "department"}).AddRow(int64(7), "LUMA"))
	mock.ExpectExec("UPDATE users SET admin = \\$1 WHERE id = \\$2").
		WithArgs(true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	admin, err := svc.Create(context.Background(), int64Ptr(7), "luma")
	require.NoError(t, err)
	assert.Equal(t, int64(7), admin.ID)
}

func TestCreateAdministratorBadDepartment(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewAdministratorService(db, zap.NewNop())
	_, err := svc.Create(context.Background(), int64Ptr(7), "FBI")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestAssignAdminRequiresExistingAdministrator(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDepartmentService(db, zap.NewNop())
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.AssignAdmin(context.Background(), "AAA", int64Ptr(9))
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.AssignAdmin(context.Background(), "AAA", nil)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRemoveAdminClearsAssignment(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDepartmentService(db, zap.NewNop())
	mock.ExpectQuery("UPDATE department_admins SET admin_id").
		WithArgs(nil, "DDS").
		WillReturnRows(sqlmock.NewRows([]string{"department", "admin_id"}).AddRow("DDS", nil))

	item, err := svc.RemoveAdmin(context.Background(), "DDS")
	require.NoError(t, err)
	assert.Nil(t, item.AdminID)
}

func TestPinDuplicateIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPinService(db)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO pinned_reports").
		WithArgs(int64(7), int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Pin(context.Background(), int64Ptr(7), int64Ptr(1))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestLocationCoordinates(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewLocationService(db)
	lat, lng := 91.0, 0.0
	_, err := svc.Create(context.Background(), &lat, &lng)
	assert.Equal(t, KindValidation, KindOf(err))
	_, err = svc.Nearby(context.Background(), 18.2, -181, 1)
	assert.Equal(t, KindValidation, KindOf(err))
	_, err = svc.Nearby(context.Background(), 18.2, -66, -1)
	assert.Equal(t, KindValidation, KindOf(err))
}
