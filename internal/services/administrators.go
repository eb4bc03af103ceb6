package services

import (
	"context"

	"civicreport-backend-go/internal/db"
	"civicreport-backend-go/internal/models"
	"civicreport-backend-go/internal/store"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const administratorNotFound = "Administrator not found"

type AdministratorService struct {
	DB             *sqlx.DB
	Administrators *store.Administrators
	Log            *zap.Logger
}

func NewAdministratorService(database *sqlx.DB, log *zap.Logger) *AdministratorService {
	return &AdministratorService{
		DB:             database,
		Administrators: store.NewAdministrators(database),
		Log:            log,
	}
}

// Create promotes userID to administrator of department and sets the user's admin flag.
func (s *AdministratorService) Create(ctx context.Context, userID *int64, department string) (models.Administrator, error) {
	if userID == nil {
		return models.Administrator{}, ErrValidation("Missing user_id")
	}
	dept, err := parseDepartment(department)
	if err != nil {
		return models.Administrator{}, err
	}
	var admin models.Administrator
	err = db.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		admins := store.NewAdministrators(tx)
		exists, err := admins.ExistsForUser(ctx, *userID)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict("Administrator already exists for this user")
		}
		if _, err := store.NewUsers(tx).Get(ctx, *userID); err != nil {
			return classifyStoreError("get user", err, userNotFound)
		}
		admin, err = admins.Insert(ctx, *userID, dept)
		if err != nil {
			return err
		}
		return store.NewUsers(tx).SetAdmin(ctx, *userID, true)
	})
	if err != nil {
		return models.Administrator{}, classifyStoreError("create administrator", err, administratorNotFound)
	}
	s.Log.Info("administrator created", zap.Int64("admin_id", admin.ID), zap.String("department", string(dept)))
	return admin, nil
}

func (s *AdministratorService) Get(ctx context.Context, id int64) (models.Administrator, error) {
	admin, err := s.Administrators.Get(ctx, id)
	if err != nil {
		return models.Administrator{}, classifyStoreError("get administrator", err, administratorNotFound)
	}
	return admin, nil
}

func (s *AdministratorService) List(ctx context.Context, page PageRequest) (Paged[models.Administrator], error) {
	items, err := s.Administrators.List(ctx, page.window())
	if err != nil {
		return Paged[models.Administrator]{}, classifyStoreError("list administrators", err, administratorNotFound)
	}
	total, err := s.Administrators.Count(ctx)
	if err != nil {
		return Paged[models.Administrator]{}, classifyStoreError("count administrators", err, administratorNotFound)
	}
	return newPaged(items, total, page), nil
}

func (s *AdministratorService) Update(ctx context.Context, id int64, department string) (models.Administrator, error) {
	dept, err := parseDepartment(department)
	if err != nil {
		return models.Administrator{}, err
	}
	admin, err := s.Administrators.UpdateDepartment(ctx, id, dept)
	if err != nil {
		return models.Administrator{}, classifyStoreError("update administrator", err, administratorNotFound)
	}
	return admin, nil
}

func (s *AdministratorService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.Administrators.Delete(ctx, id)
	if err != nil {
		return classifyStoreError("delete administrator", err, administratorNotFound)
	}
	if !deleted {
		return ErrNotFound(administratorNotFound)
	}
	s.Log.Info("administrator deleted", zap.Int64("admin_id", id))
	return nil
}

func (s *AdministratorService) ByDepartment(ctx context.Context, department string) ([]models.Administrator, error) {
	dept, err := parseDepartment(department)
	if err != nil {
		return nil, err
	}
	items, err := s.Administrators.ByDepartment(ctx, dept)
	if err != nil {
		return nil, classifyStoreError("administrators by department", err, administratorNotFound)
	}
	return items, nil
}

func (s *AdministratorService) Available(ctx context.Context) ([]models.Administrator, error) {
	items, err := s.Administrators.Available(ctx)
	if err != nil {
		return nil, classifyStoreError("available administrators", err, administratorNotFound)
	}
	return items, nil
}

func (s *AdministratorService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	exists, err := s.Administrators.ExistsForUser(ctx, userID)
	if err != nil {
		return false, classifyStoreError("check administrator", err, administratorNotFound)
	}
	return exists, nil
}
