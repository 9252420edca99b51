package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/psychodash/practice-dashboard/docs" // swagger docs
	"github.com/psychodash/practice-dashboard/internal/api/handler"
	"github.com/psychodash/practice-dashboard/internal/api/middleware"
	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Auth       ports.AuthService
	Patients   ports.PatientService
	Sessions   ports.SessionService
	Financials ports.FinancialService
	Dashboard  ports.DashboardService
	Summaries  ports.SummaryService
	// Records backs the financial CSV export, which keeps storage order.
	Records ports.Repository[domain.FinancialRecord]
	// Ready lists the dependencies checked by /health/ready.
	Ready map[string]handler.Pinger

	JWTSecret string
	Log       zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "psychodash",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, middleware.TokenIssuer(d.JWTSecret))
	patientHandler := handler.NewPatientHandler(d.Patients, d.Dashboard, d.Summaries)
	sessionHandler := handler.NewSessionHandler(d.Sessions, d.Dashboard)
	financialHandler := handler.NewFinancialHandler(d.Financials, d.Dashboard)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	exportHandler := handler.NewExportHandler(d.Dashboard, d.Records)
	authMiddleware := middleware.Auth(d.JWTSecret)
	currentUser := middleware.CurrentUser(d.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)                  // liveness  – is the process alive?
	e.GET("/health/ready", handler.NewReadinessHandler(d.Ready).Readiness) // readiness – is the store reachable?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/auth/me", authHandler.Me, authMiddleware, currentUser)

	// A token is only honoured while its user is the persisted current user.
	v1 := e.Group("/v1", authMiddleware, currentUser)

	v1.GET("/dashboard", dashboardHandler.Overview)

	v1.GET("/patients", patientHandler.List)
	v1.GET("/patients/pathologies", patientHandler.Pathologies)
	v1.POST("/patients", patientHandler.Create)
	v1.PUT("/patients/:id", patientHandler.Update)
	v1.DELETE("/patients/:id", patientHandler.Delete)
	v1.GET("/patients/:id/sessions", patientHandler.Sessions)
	v1.POST("/patients/:id/summary", patientHandler.Summary)

	v1.GET("/sessions", sessionHandler.List)
	v1.POST("/sessions", sessionHandler.Create)
	v1.PUT("/sessions/:id", sessionHandler.Update)
	v1.DELETE("/sessions/:id", sessionHandler.Delete)

	v1.GET("/export/patients.csv", exportHandler.Patients)
	v1.GET("/export/financials.csv", exportHandler.Financials, adminOnly)

	// Financial data is admin only. There is no update route.
	fin := v1.Group("/financials", adminOnly)
	fin.GET("", financialHandler.List)
	fin.POST("", financialHandler.Create)
	fin.GET("/totals", financialHandler.Totals)
	fin.DELETE("/:id", financialHandler.Delete)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
