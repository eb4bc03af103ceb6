package services

import (
	"context"

	"civicreport-backend-go/internal/models"
	"civicreport-backend-go/internal/store"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const departmentNotFound = "Department not found"

type DepartmentService struct {
	Departments    *store.Departments
	Administrators *store.Administrators
	Log            *zap.Logger
}

func NewDepartmentService(database *sqlx.DB, log *zap.Logger) *DepartmentService {
	return &DepartmentService{
		Departments:    store.NewDepartments(database),
		Administrators: store.NewAdministrators(database),
		Log:            log,
	}
}

func (s *DepartmentService) List(ctx context.Context) ([]models.DepartmentAssignment, error) {
	items, err := s.Departments.List(ctx)
	if err != nil {
		return nil, classifyStoreError("list departments", err, departmentNotFound)
	}
	return items, nil
}

func (s *DepartmentService) Get(ctx context.Context, name string) (models.DepartmentAssignment, error) {
	department, err := parseDepartment(name)
	if err != nil {
		return models.DepartmentAssignment{}, err
	}
	item, err := s.Departments.Get(ctx, department)
	if err != nil {
		return models.DepartmentAssignment{}, classifyStoreError("get department", err, departmentNotFound)
	}
	return item, nil
}

// Update overwrites the department's administrator; a nil adminID clears it.
func (s *DepartmentService) Update(ctx context.Context, name string, adminID *int64) (models.DepartmentAssignment, error) {
	department, err := parseDepartment(name)
	if err != nil {
		return models.DepartmentAssignment{}, err
	}
	if adminID != nil {
		if err := s.requireAdministrator(ctx, *adminID); err != nil {
			return models.DepartmentAssignment{}, err
		}
	}
	item, err := s.Departments.SetAdmin(ctx, department, adminID)
	if err != nil {
		return models.DepartmentAssignment{}, classifyStoreError("update department", err, departmentNotFound)
	}
	s.Log.Info("department admin changed", zap.String("department", string(department)), zap.Int64p("admin_id", adminID))
	return item, nil
}

// AssignAdmin performs the same unconditional overwrite as Update but requires an administrator.
func (s *DepartmentService) AssignAdmin(ctx context.Context, name string, adminID *int64) (models.DepartmentAssignment, error) {
	if adminID == nil {
		return models.DepartmentAssignment{}, ErrValidation("Missing admin_id")
	}
	return s.Update(ctx, name, adminID)
}

func (s *DepartmentService) RemoveAdmin(ctx context.Context, name string) (models.DepartmentAssignment, error) {
	return s.Update(ctx, name, nil)
}

func (s *DepartmentService) Available(ctx context.Context) ([]models.DepartmentAssignment, error) {
	items, err := s.Departments.Available(ctx)
	if err != nil {
		return nil, classifyStoreError("available departments", err, departmentNotFound)
	}
	return items, nil
}

func (s *DepartmentService) ByAdmin(ctx context.Context, adminID int64) ([]models.DepartmentAssignment, error) {
	items, err := s.Departments.ByAdmin(ctx, adminID)
	if err != nil {
		return nil, classifyStoreError("departments by admin", err, departmentNotFound)
	}
	return items, nil
}

func (s *DepartmentService) CheckAssignment(ctx context.Context, name string, adminID int64) (bool, error) {
	department, err := parseDepartment(name)
	if err != nil {
		return false, err
	}
	assigned, err := s.Departments.IsAssigned(ctx, department, adminID)
	if err != nil {
		return false, classifyStoreError("check department assignment", err, departmentNotFound)
	}
	return assigned, nil
}

func (s *DepartmentService) requireAdministrator(ctx context.Context, adminID int64) error {
	exists, err := s.Administrators.ExistsForUser(ctx, adminID)
	if err != nil {
		return classifyStoreError("check administrator", err, administratorNotFound)
	}
	if !exists {
		return ErrNotFound(administratorNotFound)
	}
	return nil
}
