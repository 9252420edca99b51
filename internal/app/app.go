// Package app wires configuration, storage and services together for the
// server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/psychodash/practice-dashboard/internal/api"
	"github.com/psychodash/practice-dashboard/internal/api/handler"
	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
	"github.com/psychodash/practice-dashboard/internal/core/service"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/config"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/db"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/llm"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/queue"
)

// App holds every long-lived component. Build it with New and release it
// with Close.
type App struct {
	Config *config.Config
	Log    zerolog.Logger

	KV    ports.KVStore
	Store *service.Store

	PatientRepo   *service.Collection[domain.Patient]
	SessionRepo   *service.Collection[domain.Session]
	FinancialRepo *service.Collection[domain.FinancialRecord]

	Auth       *service.AuthService
	Patients   *service.PatientService
	Sessions   *service.SessionService
	Financials *service.FinancialService
	Dashboard  *service.DashboardService
	Summaries  *queue.Dispatcher

	// Seeded lists the keys written by the startup seeding.
	Seeded []string
}

// New opens the configured backend and seeds absent collections.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	kv, err := db.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	a := &App{Config: cfg, Log: log, KV: kv, Store: service.NewStore(kv)}

	fixtures, err := service.LoadFixturesFile(cfg.SeedFile)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("seed file: %w", err)
	}
	a.Seeded, err = service.NewSeeder(a.Store, fixtures, log).SeedIfAbsent(ctx)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}

	a.PatientRepo = service.NewPatientRepository(a.Store, log)
	a.SessionRepo = service.NewSessionRepository(a.Store, log)
	a.FinancialRepo = service.NewFinancialRepository(a.Store, log)

	a.Auth = service.NewAuthService(a.Store, log)
	a.Patients = service.NewPatientService(a.PatientRepo, log)
	a.Sessions = service.NewSessionService(a.SessionRepo, log)
	a.Financials = service.NewFinancialService(a.FinancialRepo, log)
	a.Dashboard = service.NewDashboardService(a.PatientRepo, a.SessionRepo, a.FinancialRepo)

	summarizer := llm.NewClient(llm.Config{
		APIKey:  cfg.Summarizer.APIKey,
		BaseURL: cfg.Summarizer.BaseURL,
		Model:   cfg.Summarizer.Model,
	})
	if !summarizer.Configured() {
		log.Warn().Msg("API_KEY not set, summaries will return the configuration notice")
	}
	a.Summaries = queue.NewDispatcher(cfg.Summarizer.Workers, service.NewSummaryService(summarizer, log), log)

	return a, nil
}

// Router builds the HTTP API on top of the app's services.
func (a *App) Router() *echo.Echo {
	return api.NewRouter(api.Dependencies{
		Auth:       a.Auth,
		Patients:   a.Patients,
		Sessions:   a.Sessions,
		Financials: a.Financials,
		Dashboard:  a.Dashboard,
		Summaries:  a.Summaries,
		Records:    a.FinancialRepo,
		Ready:      map[string]handler.Pinger{"store": a.Store},
		JWTSecret:  a.Config.JWTSecret,
		Log:        a.Log,
	})
}

// RequireAdmin returns the logged-in user when it is an admin.
func (a *App) RequireAdmin(ctx context.Context) (*domain.User, error) {
	user, err := a.Auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (a *App) Close() error {
	if a.KV == nil {
		return nil
	}
	return a.KV.Close()
}
