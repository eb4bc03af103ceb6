package store

import (
	"context"

	"civicreport-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password, admin, suspended, pinned, created_at, total_reports`

type Users struct {
	db sqlx.ExtContext
}

func NewUsers(db sqlx.ExtContext) *Users {
	return &Users{db: db}
}

func (u *Users) Insert(ctx context.Context, email, passwordHash string, admin bool) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, u.db, &user, `
INSERT INTO users (email, password, admin)
VALUES ($1, $2, $3)
RETURNING `+userColumns, email, passwordHash, admin)
	return user, err
}

func (u *Users) Get(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, u.db, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return user, err
}

func (u *Users) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, u.db, &user, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return user, err
}

func (u *Users) List(ctx context.Context, page Page) ([]models.User, error) {
	items := []models.User{}
	err := sqlx.SelectContext(ctx, u.db, &items, `
SELECT `+userColumns+`
FROM users
ORDER BY id
LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	return items, err
}

func (u *Users) Count(ctx context.Context) (int, error) {
	var total int
	err := sqlx.GetContext(ctx, u.db, &total, `SELECT COUNT(*) FROM users`)
	return total, err
}

func (u *Users) SetSuspended(ctx context.Context, id int64, suspended bool) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, u.db, &user, `
UPDATE users SET suspended = $1 WHERE id = $2
RETURNING `+userColumns, suspended, id)
	return user, err
}

func (u *Users) SetPinned(ctx context.Context, id int64, pinned bool) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, u.db, &user, `
UPDATE users SET pinned = $1 WHERE id = $2
RETURNING `+userColumns, pinned, id)
	return user, err
}

// SetAdmin flips the admin flag used by the administrator workflow.
func (u *Users) SetAdmin(ctx context.Context, id int64, admin bool) error {
	_, err := u.db.ExecContext(ctx, `UPDATE users SET admin = $1 WHERE id = $2`, admin, id)
	return err
}
