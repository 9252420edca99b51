package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/psychodash/practice-dashboard/internal/api/handler"
	"github.com/psychodash/practice-dashboard/internal/core/service"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/db/memory"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*echo.Echo, *memory.KVStore) {
	t.Helper()
	log := zerolog.Nop()
	kv := memory.NewKVStore()
	store := service.NewStore(kv)

	fixtures, err := service.DefaultFixtures()
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	if _, err := service.NewSeeder(store, fixtures, log).SeedIfAbsent(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	patients := service.NewPatientRepository(store, log)
	sessions := service.NewSessionRepository(store, log)
	financials := service.NewFinancialRepository(store, log)

	e := NewRouter(Dependencies{
		Auth:       service.NewAuthService(store, log),
		Patients:   service.NewPatientService(patients, log),
		Sessions:   service.NewSessionService(sessions, log),
		Financials: service.NewFinancialService(financials, log),
		Dashboard:  service.NewDashboardService(patients, sessions, financials),
		Summaries:  service.NewSummaryService(nil, log),
		Records:    financials,
		Ready:      map[string]handler.Pinger{"store": store},
		JWTSecret:  testSecret,
		Log:        log,
		Registry:   prometheus.NewRegistry(),
	})
	return e, kv
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/auth/login", "", `{"username":"`+username+`","password":"password"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login %s: no token in %s", username, rec.Body.String())
	}
	return resp.Token
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

func TestRouter_LoginFailureIsGeneric401(t *testing.T) {
	e, kv := newTestRouter(t)

	rec := do(e, http.MethodPost, "/auth/login", "", `{"username":"admin","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "invalid credentials" {
		t.Fatalf("unexpected message %q", msg)
	}
	if _, ok, _ := kv.Get(context.Background(), service.KeyCurrentUser); ok {
		t.Fatalf("failed login must not persist a user")
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := do(e, http.MethodGet, "/v1/patients", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/v1/patients", "garbage", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}
}

func TestRouter_LogoutEndsTokenAccess(t *testing.T) {
	e, _ := newTestRouter(t)
	token := login(t, e, "admin")

	if rec := do(e, http.MethodGet, "/v1/financials", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("before logout: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/auth/logout", token, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}
	for _, path := range []string{"/v1/financials", "/v1/patients", "/auth/me"} {
		if rec := do(e, http.MethodGet, path, token, ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s after logout: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestRouter_NewLoginReplacesIdentity(t *testing.T) {
	e, _ := newTestRouter(t)
	adminToken := login(t, e, "admin")
	userToken := login(t, e, "user")

	if rec := do(e, http.MethodGet, "/v1/financials", adminToken, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale admin token: expected 401, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/v1/patients", userToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("current user token: expected 200, got %d", rec.Code)
	}
}

func TestRouter_AdminSeesSeededDashboardAndFinancials(t *testing.T) {
	e, _ := newTestRouter(t)
	token := login(t, e, "admin")

	rec := do(e, http.MethodGet, "/v1/dashboard", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", rec.Code)
	}
	var dash struct {
		Counts struct {
			TotalPatients   int `json:"totalPatients"`
			PendingSessions int `json:"pendingSessions"`
		} `json:"counts"`
		WeeklyActivity []json.RawMessage `json:"weeklyActivity"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &dash); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if dash.Counts.TotalPatients != 2 || dash.Counts.PendingSessions != 1 || len(dash.WeeklyActivity) != 7 {
		t.Fatalf("unexpected dashboard %s", rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/v1/financials/totals", token, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"net":"-350.00"`) {
		t.Fatalf("totals: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/v1/export/financials.csv", token, "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "Date,Description,Type,Amount\n") {
		t.Fatalf("export: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UserRoleCannotSeeFinancials(t *testing.T) {
	e, _ := newTestRouter(t)
	token := login(t, e, "user")

	for _, path := range []string{"/v1/financials", "/v1/financials/totals", "/v1/export/financials.csv"} {
		if rec := do(e, http.MethodGet, path, token, ""); rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", path, rec.Code)
		}
	}
	if rec := do(e, http.MethodPost, "/v1/financials", token, `{"description":"x","amount":1,"type":"income"}`); rec.Code != http.StatusForbidden {
		t.Fatalf("create: expected 403, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/v1/patients", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("patients: expected 200, got %d", rec.Code)
	}
}

func TestRouter_PatientLifecycleKeepsSessions(t *testing.T) {
	e, _ := newTestRouter(t)
	token := login(t, e, "admin")

	rec := do(e, http.MethodPost, "/v1/patients", token, `{"firstName":"Ana","lastName":"Ruiz","age":41,"pathology":"Anxiety"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create patient: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	rec = do(e, http.MethodPost, "/v1/sessions", token, `{"patientId":"`+created.ID+`","date":"2026-10-20T14:00","type":"Therapy"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", rec.Code, rec.Body.String())
	}

	if rec = do(e, http.MethodDelete, "/v1/patients/"+created.ID, token, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete patient: %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/v1/sessions?date=2026-10-20", token, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"patientName":"Unknown patient"`) {
		t.Fatalf("orphan session: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ValidationIs400(t *testing.T) {
	e, _ := newTestRouter(t)
	token := login(t, e, "admin")

	rec := do(e, http.MethodPost, "/v1/patients", token, `{"lastName":"Ruiz"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "firstName is required" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_CorruptCollectionIs500(t *testing.T) {
	e, kv := newTestRouter(t)
	token := login(t, e, "admin")

	if err := kv.Set(context.Background(), service.KeySessions, []byte("{not json")); err != nil {
		t.Fatalf("set: %v", err)
	}

	rec := do(e, http.MethodGet, "/v1/sessions", token, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "stored data is corrupt" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_SummaryWithoutConfigFallsBack(t *testing.T) {
	e, _ := newTestRouter(t)
	token := login(t, e, "user")

	rec := do(e, http.MethodPost, "/v1/patients/1/summary", token, `{"notes":"slept better"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), service.SummaryMissingConfig) {
		t.Fatalf("expected missing-config fallback, got %s", rec.Body.String())
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := do(e, http.MethodGet, path, "", ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
