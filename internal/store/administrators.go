package store

import (
	"context"
	"database/sql"
	"errors"

	"civicreport-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const administratorSelect = `
SELECT a.id, a.department, u.email, u.suspended, u.created_at AS user_created_at
FROM administrators a
LEFT JOIN users u ON u.id = a.id`

type Administrators struct {
	db sqlx.ExtContext
}

func NewAdministrators(db sqlx.ExtContext) *Administrators {
	return &Administrators{db: db}
}

// Insert promotes an existing user to administrator; the administrator id is the user id.
func (a *Administrators) Insert(ctx context.Context, userID int64, department models.Department) (models.Administrator, error) {
	var admin models.Administrator
	err := sqlx.GetContext(ctx, a.db, &admin, `
INSERT INTO administrators (id, department)
VALUES ($1, $2)
RETURNING id, department`, userID, department)
	return admin, err
}

func (a *Administrators) Get(ctx context.Context, id int64) (models.Administrator, error) {
	var admin models.Administrator
	err := sqlx.GetContext(ctx, a.db, &admin, administratorSelect+` WHERE a.id = $1`, id)
	return admin, err
}

func (a *Administrators) List(ctx context.Context, page Page) ([]models.Administrator, error) {
	items := []models.Administrator{}
	err := sqlx.SelectContext(ctx, a.db, &items, administratorSelect+`
ORDER BY a.id
LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	return items, err
}

func (a *Administrators) Count(ctx context.Context) (int, error) {
	var total int
	err := sqlx.GetContext(ctx, a.db, &total, `SELECT COUNT(*) FROM administrators`)
	return total, err
}

func (a *Administrators) UpdateDepartment(ctx context.Context, id int64, department models.Department) (models.Administrator, error) {
	var admin models.Administrator
	err := sqlx.GetContext(ctx, a.db, &admin, `
UPDATE administrators SET department = $1 WHERE id = $2
RETURNING id, department`, department, id)
	return admin, err
}

func (a *Administrators) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted int64
	err := sqlx.GetContext(ctx, a.db, &deleted, `DELETE FROM administrators WHERE id = $1 RETURNING id`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (a *Administrators) ByDepartment(ctx context.Context, department models.Department) ([]models.Administrator, error) {
	items := []models.Administrator{}
	err := sqlx.SelectContext(ctx, a.db, &items, administratorSelect+`
WHERE a.department = $1
ORDER BY a.id`, department)
	return items, err
}

// Available lists administrators not assigned to any department.
func (a *Administrators) Available(ctx context.Context) ([]models.Administrator, error) {
	items := []models.Administrator{}
	err := sqlx.SelectContext(ctx, a.db, &items, administratorSelect+`
WHERE NOT EXISTS (SELECT 1 FROM department_admins d WHERE d.admin_id = a.id)
ORDER BY a.id`)
	return items, err
}

func (a *Administrators) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, a.db, &exists, `SELECT EXISTS (SELECT 1 FROM administrators WHERE id = $1)`, userID)
	return exists, err
}
