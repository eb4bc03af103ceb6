package store

import (
	"context"

	"civicreport-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const departmentSelect = `
SELECT d.department, d.admin_id, u.email AS admin_email
FROM department_admins d
LEFT JOIN administrators a ON a.id = d.admin_id
LEFT JOIN users u ON u.id = a.id`

type Departments struct {
	db sqlx.ExtContext
}

func NewDepartments(db sqlx.ExtContext) *Departments {
	return &Departments{db: db}
}

func (d *Departments) List(ctx context.Context) ([]models.DepartmentAssignment, error) {
	items := []models.DepartmentAssignment{}
	err := sqlx.SelectContext(ctx, d.db, &items, departmentSelect+` ORDER BY d.department`)
	return items, err
}

func (d *Departments) Get(ctx context.Context, department models.Department) (models.DepartmentAssignment, error) {
	var item models.DepartmentAssignment
	err := sqlx.GetContext(ctx, d.db, &item, departmentSelect+` WHERE d.department = $1`, department)
	return item, err
}

// SetAdmin overwrites the department's administrator; a nil adminID clears it.
// It returns sql.ErrNoRows when the department row is missing.
func (d *Departments) SetAdmin(ctx context.Context, department models.Department, adminID *int64) (models.DepartmentAssignment, error) {
	var item models.DepartmentAssignment
	err := sqlx.GetContext(ctx, d.db, &item, `
UPDATE department_admins SET admin_id = $1 WHERE department = $2
RETURNING department, admin_id`, adminID, department)
	return item, err
}

func (d *Departments) Available(ctx context.Context) ([]models.DepartmentAssignment, error) {
	items := []models.DepartmentAssignment{}
	err := sqlx.SelectContext(ctx, d.db, &items, `
SELECT department, admin_id
FROM department_admins
WHERE admin_id IS NULL
ORDER BY department`)
	return items, err
}

func (d *Departments) ByAdmin(ctx context.Context, adminID int64) ([]models.DepartmentAssignment, error) {
	items := []models.DepartmentAssignment{}
	err := sqlx.SelectContext(ctx, d.db, &items, departmentSelect+`
WHERE d.admin_id = $1
ORDER BY d.department`, adminID)
	return items, err
}

func (d *Departments) IsAssigned(ctx context.Context, department models.Department, adminID int64) (bool, error) {
	var assigned bool
	err := sqlx.GetContext(ctx, d.db, &assigned, `
SELECT EXISTS (SELECT 1 FROM department_admins WHERE department = $1 AND admin_id = $2)`, department, adminID)
	return assigned, err
}
