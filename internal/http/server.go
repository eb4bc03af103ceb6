package httpapi

import (
	"net/http"
	"time"

	"civicreport-backend-go/internal/config"
	"civicreport-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	Config         config.Config
	Log            *zap.Logger
	Tokens         services.TokenService
	Reports        ReportLifecycle
	Stats          StatsReader
	Departments    DepartmentManager
	Administrators AdministratorManager
	Users          UserManager
	Pins           PinManager
	Locations      LocationManager
	Health         HealthChecker
}

func NewServer(db *sqlx.DB, cfg config.Config, log *zap.Logger) *Server {
	tokens := services.TokenService{
		Secret:    []byte(cfg.JWTSecret),
		Issuer:    cfg.JWTIssuer,
		AccessTTL: time.Duration(cfg.AccessTTLSeconds) * time.Second,
	}
	return &Server{
		Config:         cfg,
		Log:            log,
		Tokens:         tokens,
		Reports:        services.NewReportService(db, log, cfg.RatingRequiresResolved),
		Stats:          services.NewStatsService(db),
		Departments:    services.NewDepartmentService(db, log),
		Administrators: services.NewAdministratorService(db, log),
		Users:          services.NewUserService(db, tokens, log),
		Pins:           services.NewPinService(db),
		Locations:      services.NewLocationService(db),
		Health:         services.SystemHealth{DB: db, DiskPath: cfg.LogDir},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.Log))
	r.Use(chimw.Recoverer)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	adminOnly := s.adminOnly()

	r.Get("/", s.Index)
	r.Get("/system/health", s.SystemHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/login", s.Login)
	r.Post("/logout", s.Logout)
	r.With(WithAuth(s.Tokens)).Get("/me", s.Me)

	r.Route("/reports", func(reports chi.Router) {
		reports.Get("/", s.ListReports)
		reports.Post("/", s.CreateReport)
		reports.Get("/search", s.SearchReports)
		reports.Get("/filter", s.FilterReports)
		reports.Get("/status-options", s.ReportStatusOptions)
		reports.Get("/user/{userId}", s.ReportsByUser)
		reports.Route("/{reportId}", func(report chi.Router) {
			report.Get("/", s.GetReport)
			report.Put("/", s.UpdateReport)
			report.Delete("/", s.DeleteReport)
			report.With(adminOnly).Post("/validate", s.ValidateReport)
			report.With(adminOnly).Post("/resolve", s.ResolveReport)
			report.With(adminOnly).Put("/status", s.ChangeReportStatus)
			report.Post("/rate", s.RateReport)
			report.Get("/rating", s.ReportRating)
			report.Get("/rating-status", s.ReportRatingStatus)
		})
	})

	r.Route("/stats", func(stats chi.Router) {
		stats.Get("/overview", s.OverviewStats)
		stats.Get("/summary", s.SummaryStats)
		stats.Get("/departments", s.AllDepartmentStats)
		stats.Get("/department/{department}", s.DepartmentStats)
		stats.Get("/admins", s.AllAdminStats)
		stats.Get("/admin/{adminId}", s.AdminStats)
		stats.Get("/user/{userId}", s.UserStats)
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(adminOnly)
		admin.Get("/dashboard", s.AdminDashboard)
		admin.Get("/reports/pending", s.PendingReports)
		admin.Get("/reports/assigned", s.AssignedReports)
	})

	r.Route("/users", func(users chi.Router) {
		users.Get("/", s.ListUsers)
		users.Post("/", s.CreateUser)
		users.Get("/{userId}", s.GetUser)
		users.Get("/{userId}/pinned-reports", s.UserPinnedReports)
		users.With(adminOnly).Post("/{userId}/suspend", s.SuspendUser)
		users.With(adminOnly).Post("/{userId}/unsuspend", s.UnsuspendUser)
		users.With(adminOnly).Post("/{userId}/pin", s.PinUser)
		users.With(adminOnly).Post("/{userId}/unpin", s.UnpinUser)
	})

	r.Route("/administrators", func(admins chi.Router) {
		admins.Get("/", s.ListAdministrators)
		admins.With(adminOnly).Post("/", s.CreateAdministrator)
		admins.Get("/performance", s.AdministratorPerformance)
		admins.Get("/available", s.AvailableAdministrators)
		admins.Get("/department/{department}", s.AdministratorsByDepartment)
		admins.Get("/check/{userId}", s.CheckAdministrator)
		admins.Get("/{adminId}", s.GetAdministrator)
		admins.With(adminOnly).Put("/{adminId}", s.UpdateAdministrator)
		admins.With(adminOnly).Delete("/{adminId}", s.DeleteAdministrator)
	})

	r.Route("/departments", func(departments chi.Router) {
		departments.Get("/", s.ListDepartments)
		departments.Get("/available", s.AvailableDepartments)
		departments.Get("/admin/{adminId}", s.DepartmentsByAdmin)
		departments.Get("/{department}", s.GetDepartment)
		departments.With(adminOnly).Put("/{department}", s.UpdateDepartment)
		departments.Get("/{department}/admin", s.GetDepartmentAdmin)
		departments.With(adminOnly).Post("/{department}/admin", s.AssignDepartmentAdmin)
		departments.With(adminOnly).Delete("/{department}/admin", s.RemoveDepartmentAdmin)
		departments.Get("/{department}/admin/{adminId}/check", s.CheckDepartmentAdmin)
	})

	r.Route("/pinned-reports", func(pins chi.Router) {
		pins.Get("/", s.ListPinnedReports)
		pins.Post("/", s.PinReport)
		pins.Delete("/{reportId}", s.UnpinReport)
		pins.Get("/check/{userId}/{reportId}", s.CheckPinnedReport)
	})

	r.Route("/locations", func(locations chi.Router) {
		locations.Get("/", s.ListLocations)
		locations.Post("/", s.CreateLocation)
		locations.Get("/nearby", s.NearbyLocations)
		locations.Get("/{locationId}", s.GetLocation)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

// adminOnly gates administrator mutations behind an admin bearer token when
// AUTH_REQUIRED is set, and is a no-op otherwise.
func (s *Server) adminOnly() func(http.Handler) http.Handler {
	if !s.Config.AuthRequired {
		return func(next http.Handler) http.Handler { return next }
	}
	withAuth := WithAuth(s.Tokens)
	return func(next http.Handler) http.Handler {
		return withAuth(RequireAdmin(next))
	}
}
