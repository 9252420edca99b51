package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

func TestPatientHandler_ListPassesFilters(t *testing.T) {
	dash := &stubDashboard{patients: []domain.Patient{{ID: "1", FirstName: "Alice", LastName: "Doe"}}}
	handler := NewPatientHandler(&stubPatientService{}, dash, &stubSummaries{})

	c, rec := newContext(http.MethodGet, "/v1/patients?search=%20ali%20&pathology=Anxiety", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if dash.patientFilter != (ports.PatientFilter{Search: "ali", Pathology: "Anxiety"}) {
		t.Fatalf("unexpected filter %+v", dash.patientFilter)
	}

	var got []domain.Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].FirstName != "Alice" {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestPatientHandler_Create(t *testing.T) {
	svc := &stubPatientService{
		createFn: func(ctx context.Context, in ports.PatientInput) (*domain.Patient, error) {
			if in.FirstName != "Ana" || in.Age != 41 {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.Patient{ID: "p-1", FirstName: in.FirstName, LastName: in.LastName, Age: in.Age}, nil
		},
	}
	handler := NewPatientHandler(svc, &stubDashboard{}, &stubSummaries{})

	c, rec := newContext(http.MethodPost, "/v1/patients", `{"firstName":"Ana","lastName":"Ruiz","age":41}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestPatientHandler_CreateRejectsMissingName(t *testing.T) {
	svc := &stubPatientService{
		createFn: func(ctx context.Context, in ports.PatientInput) (*domain.Patient, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPatientHandler(svc, &stubDashboard{}, &stubSummaries{})

	c, _ := newContext(http.MethodPost, "/v1/patients", `{"lastName":"Ruiz","age":-1}`)
	err := handler.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPatientHandler_UpdateUsesPathID(t *testing.T) {
	svc := &stubPatientService{
		saveFn: func(ctx context.Context, id string, in ports.PatientInput) (*domain.Patient, error) {
			if id != "p-9" {
				t.Fatalf("unexpected id %q", id)
			}
			return &domain.Patient{ID: id, FirstName: in.FirstName, LastName: in.LastName}, nil
		},
	}
	handler := NewPatientHandler(svc, &stubDashboard{}, &stubSummaries{})

	c, rec := newContext(http.MethodPut, "/v1/patients/p-9", `{"firstName":"Ana","lastName":"Ruiz"}`)
	c.SetParamNames("id")
	c.SetParamValues("p-9")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPatientHandler_Delete(t *testing.T) {
	svc := &stubPatientService{}
	handler := NewPatientHandler(svc, &stubDashboard{}, &stubSummaries{})

	c, rec := newContext(http.MethodDelete, "/v1/patients/p-1", "")
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || len(svc.deleted) != 1 || svc.deleted[0] != "p-1" {
		t.Fatalf("unexpected delete: %d %v", rec.Code, svc.deleted)
	}
}

func TestPatientHandler_Sessions(t *testing.T) {
	dash := &stubDashboard{sessions: []domain.Session{{ID: "s2"}, {ID: "s1"}}}
	handler := NewPatientHandler(&stubPatientService{}, dash, &stubSummaries{})

	c, rec := newContext(http.MethodGet, "/v1/patients/p-1/sessions", "")
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	if err := handler.Sessions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if dash.historyID != "p-1" {
		t.Fatalf("expected history for p-1, got %q", dash.historyID)
	}
	var got []domain.Session
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 2 || got[0].ID != "s2" {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestPatientHandler_SummaryUsesStoredNotes(t *testing.T) {
	svc := &stubPatientService{
		getFn: func(ctx context.Context, id string) (*domain.Patient, error) {
			return &domain.Patient{ID: id, Notes: "Sleeps poorly."}, nil
		},
	}
	sum := &stubSummaries{result: ports.SummaryResult{Text: "Improving."}}
	handler := NewPatientHandler(svc, &stubDashboard{}, sum)

	c, rec := newContext(http.MethodPost, "/v1/patients/p-1/summary", "")
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	if err := handler.Summary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if sum.notes != "Sleeps poorly." {
		t.Fatalf("expected stored notes to be summarized, got %q", sum.notes)
	}

	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Summary != "Improving." || !resp.Generated || resp.Notes != "Sleeps poorly.\n\n[AI Summary]: Improving." {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPatientHandler_SummaryDraftNotesAndFallback(t *testing.T) {
	svc := &stubPatientService{
		getFn: func(ctx context.Context, id string) (*domain.Patient, error) {
			t.Fatalf("draft notes must not read the store")
			return nil, nil
		},
	}
	sum := &stubSummaries{result: ports.SummaryResult{Text: "Error generating summary.", Err: errors.New("boom")}}
	handler := NewPatientHandler(svc, &stubDashboard{}, sum)

	c, rec := newContext(http.MethodPost, "/v1/patients/p-1/summary", `{"notes":"draft"}`)
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	if err := handler.Summary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("fallbacks are still 200, got %d", rec.Code)
	}
	var resp summaryResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Generated || resp.Summary != "Error generating summary." {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPatientHandler_SummaryUnknownPatient(t *testing.T) {
	svc := &stubPatientService{
		getFn: func(ctx context.Context, id string) (*domain.Patient, error) {
			return nil, domain.ErrNotFound
		},
	}
	handler := NewPatientHandler(svc, &stubDashboard{}, &stubSummaries{})

	c, _ := newContext(http.MethodPost, "/v1/patients/ghost/summary", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	if err := handler.Summary(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
