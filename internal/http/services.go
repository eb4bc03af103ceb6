package httpapi

import (
	"context"

	"civicreport-backend-go/internal/models"
	"civicreport-backend-go/internal/services"
)

// The handlers depend on these narrow views of the service layer.

type ReportLifecycle interface {
	Create(ctx context.Context, in services.CreateReportInput) (models.Report, error)
	Get(ctx context.Context, id int64) (models.Report, error)
	List(ctx context.Context, page services.PageRequest, sort string) (services.Paged[models.Report], error)
	Update(ctx context.Context, id int64, patch models.ReportPatch) (models.Report, error)
	Validate(ctx context.Context, id int64, adminID *int64) (models.Report, error)
	Resolve(ctx context.Context, id int64, adminID *int64) (models.Report, error)
	Rate(ctx context.Context, id int64, rating *int) (models.Report, error)
	ChangeStatus(ctx context.Context, id int64, status string) (models.Report, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, page services.PageRequest) (services.Paged[models.Report], error)
	Filter(ctx context.Context, status, category string, page services.PageRequest) (services.Paged[models.Report], error)
	ByUser(ctx context.Context, userID int64, page services.PageRequest) (services.Paged[models.Report], error)
	Pending(ctx context.Context, page services.PageRequest) (services.Paged[models.Report], error)
	Assigned(ctx context.Context, adminID *int64, page services.PageRequest) (services.Paged[models.Report], error)
	RatingStatus(ctx context.Context, id int64, userID *int64) (services.RatingStatus, error)
	StatusOptions() services.StatusOptions
}

type StatsReader interface {
	Overview(ctx context.Context) (models.OverviewStats, error)
	Department(ctx context.Context, name string) (models.DepartmentStats, error)
	AllDepartments(ctx context.Context) ([]models.DepartmentStats, error)
	Admin(ctx context.Context, adminID int64) (models.AdminStats, error)
	AllAdmins(ctx context.Context) ([]models.AdminStats, error)
	User(ctx context.Context, userID int64) (models.UserStats, error)
	Performance(ctx context.Context, days int) ([]models.AdminPerformance, error)
	Dashboard(ctx context.Context) (models.Dashboard, error)
	Summary(ctx context.Context) (models.Summary, error)
}

type DepartmentManager interface {
	List(ctx context.Context) ([]models.DepartmentAssignment, error)
	Get(ctx context.Context, name string) (models.DepartmentAssignment, error)
	Update(ctx context.Context, name string, adminID *int64) (models.DepartmentAssignment, error)
	AssignAdmin(ctx context.Context, name string, adminID *int64) (models.DepartmentAssignment, error)
	RemoveAdmin(ctx context.Context, name string) (models.DepartmentAssignment, error)
	Available(ctx context.Context) ([]models.DepartmentAssignment, error)
	ByAdmin(ctx context.Context, adminID int64) ([]models.DepartmentAssignment, error)
	CheckAssignment(ctx context.Context, name string, adminID int64) (bool, error)
}

type AdministratorManager interface {
	Create(ctx context.Context, userID *int64, department string) (models.Administrator, error)
	Get(ctx context.Context, id int64) (models.Administrator, error)
	List(ctx context.Context, page services.PageRequest) (services.Paged[models.Administrator], error)
	Update(ctx context.Context, id int64, department string) (models.Administrator, error)
	Delete(ctx context.Context, id int64) error
	ByDepartment(ctx context.Context, department string) ([]models.Administrator, error)
	Available(ctx context.Context) ([]models.Administrator, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type UserManager interface {
	Create(ctx context.Context, email, password string, admin bool) (models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	List(ctx context.Context, page services.PageRequest) (services.Paged[models.User], error)
	Suspend(ctx context.Context, id int64) (models.User, error)
	Unsuspend(ctx context.Context, id int64) (models.User, error)
	Pin(ctx context.Context, id int64) (models.User, error)
	Unpin(ctx context.Context, id int64) (models.User, error)
	Login(ctx context.Context, email, password string) (services.LoginResult, error)
}

type PinManager interface {
	Pin(ctx context.Context, userID, reportID *int64) (models.PinnedReport, error)
	Unpin(ctx context.Context, userID *int64, reportID int64) error
	ListByUser(ctx context.Context, userID *int64, page services.PageRequest) (services.Paged[models.PinnedReportDetail], error)
	IsPinned(ctx context.Context, userID, reportID int64) (bool, error)
}

type LocationManager interface {
	Create(ctx context.Context, latitude, longitude *float64) (models.Location, error)
	Get(ctx context.Context, id int64) (models.Location, error)
	List(ctx context.Context, page services.PageRequest) (services.Paged[models.Location], error)
	Nearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]models.Location, error)
}

type HealthChecker interface {
	Check(ctx context.Context) services.Health
}
