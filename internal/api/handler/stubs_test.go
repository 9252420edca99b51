package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

// newContext builds an echo context with the validator installed. body may be empty.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubAuthService struct {
	loginFn       func(ctx context.Context, username, password string) (*domain.User, error)
	logoutCalls   int
	currentUserFn func(ctx context.Context) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(context.Context) error {
	s.logoutCalls++
	return nil
}

func (s *stubAuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	return s.currentUserFn(ctx)
}

type stubPatientService struct {
	createFn func(ctx context.Context, in ports.PatientInput) (*domain.Patient, error)
	saveFn   func(ctx context.Context, id string, in ports.PatientInput) (*domain.Patient, error)
	getFn    func(ctx context.Context, id string) (*domain.Patient, error)
	deleted  []string
}

func (s *stubPatientService) Create(ctx context.Context, in ports.PatientInput) (*domain.Patient, error) {
	return s.createFn(ctx, in)
}

func (s *stubPatientService) Save(ctx context.Context, id string, in ports.PatientInput) (*domain.Patient, error) {
	return s.saveFn(ctx, id, in)
}

func (s *stubPatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	return s.getFn(ctx, id)
}

func (s *stubPatientService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubSessionService struct {
	createFn func(ctx context.Context, in ports.SessionInput) (*domain.Session, error)
	saveFn   func(ctx context.Context, id string, in ports.SessionInput) (*domain.Session, error)
	deleted  []string
}

func (s *stubSessionService) Create(ctx context.Context, in ports.SessionInput) (*domain.Session, error) {
	return s.createFn(ctx, in)
}

func (s *stubSessionService) Save(ctx context.Context, id string, in ports.SessionInput) (*domain.Session, error) {
	return s.saveFn(ctx, id, in)
}

func (s *stubSessionService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubFinancialService struct {
	createFn func(ctx context.Context, in ports.FinancialInput) (*domain.FinancialRecord, error)
	deleted  []string
}

func (s *stubFinancialService) Create(ctx context.Context, in ports.FinancialInput) (*domain.FinancialRecord, error) {
	return s.createFn(ctx, in)
}

func (s *stubFinancialService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

// stubDashboard returns canned data and records the filters it was given.
type stubDashboard struct {
	overview      *ports.DashboardOverview
	patients      []domain.Patient
	pathologies   []string
	sessions      []domain.Session
	views         []ports.SessionView
	totals        *ports.FinancialTotals
	financials    []domain.FinancialRecord
	err           error
	patientFilter ports.PatientFilter
	sessionFilter ports.SessionFilter
	historyID     string
}

func (s *stubDashboard) Overview(context.Context) (*ports.DashboardOverview, error) {
	return s.overview, s.err
}

func (s *stubDashboard) SessionsForPatient(_ context.Context, id string) ([]domain.Session, error) {
	s.historyID = id
	return s.sessions, s.err
}

func (s *stubDashboard) ListSessions(_ context.Context, f ports.SessionFilter) ([]ports.SessionView, error) {
	s.sessionFilter = f
	return s.views, s.err
}

func (s *stubDashboard) ListPatients(_ context.Context, f ports.PatientFilter) ([]domain.Patient, error) {
	s.patientFilter = f
	return s.patients, s.err
}

func (s *stubDashboard) Pathologies(context.Context) ([]string, error) {
	return s.pathologies, s.err
}

func (s *stubDashboard) FinancialTotals(context.Context) (*ports.FinancialTotals, error) {
	return s.totals, s.err
}

func (s *stubDashboard) RecentFinancials(context.Context) ([]domain.FinancialRecord, error) {
	return s.financials, s.err
}

type stubSummaries struct {
	result ports.SummaryResult
	notes  string
}

func (s *stubSummaries) Summarize(_ context.Context, notes string) ports.SummaryResult {
	s.notes = notes
	return s.result
}

type stubRecords struct {
	records []domain.FinancialRecord
}

func (s *stubRecords) List(context.Context) ([]domain.FinancialRecord, error) { return s.records, nil }

func (s *stubRecords) Get(_ context.Context, id string) (domain.FinancialRecord, bool, error) {
	for _, r := range s.records {
		if r.ID == id {
			return r, true, nil
		}
	}
	return domain.FinancialRecord{}, false, nil
}

func (s *stubRecords) Upsert(context.Context, domain.FinancialRecord) error { return nil }

func (s *stubRecords) DeleteByID(context.Context, string) error { return nil }
