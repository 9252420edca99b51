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

func TestSessionHandler_ListJoinsNames(t *testing.T) {
	dash := &stubDashboard{views: []ports.SessionView{
		{Session: domain.Session{ID: "s1", PatientID: "1", Status: domain.SessionScheduled}, PatientName: "Doe, Alice"},
		{Session: domain.Session{ID: "s2", PatientID: "gone", Status: domain.SessionScheduled}, PatientName: domain.UnknownPatient},
	}}
	handler := NewSessionHandler(&stubSessionService{}, dash)

	c, rec := newContext(http.MethodGet, "/v1/sessions?status=Scheduled&date=2026-10-20", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if dash.sessionFilter != (ports.SessionFilter{Status: domain.SessionScheduled, DatePrefix: "2026-10-20"}) {
		t.Fatalf("unexpected filter %+v", dash.sessionFilter)
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 || got[0]["patientName"] != "Doe, Alice" || got[1]["patientName"] != "Unknown patient" {
		t.Fatalf("unexpected body %+v", got)
	}
	if got[0]["patientId"] != "1" {
		t.Fatalf("session fields must be inlined, got %+v", got[0])
	}
}

func TestSessionHandler_ListRejectsUnknownStatus(t *testing.T) {
	handler := NewSessionHandler(&stubSessionService{}, &stubDashboard{})

	c, rec := newContext(http.MethodGet, "/v1/sessions?status=Missed", "")
	_ = handler.List(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSessionHandler_Create(t *testing.T) {
	svc := &stubSessionService{
		createFn: func(ctx context.Context, in ports.SessionInput) (*domain.Session, error) {
			if in.PatientID != "1" || in.Status != domain.SessionCompleted {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.Session{ID: "s1", PatientID: in.PatientID, Date: "2026-10-20T14:00:00.000Z", Status: in.Status}, nil
		},
	}
	handler := NewSessionHandler(svc, &stubDashboard{})

	c, rec := newContext(http.MethodPost, "/v1/sessions", `{"patientId":"1","date":"2026-10-20T14:00","status":"Completed"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestSessionHandler_CreateRejectsBadStatus(t *testing.T) {
	svc := &stubSessionService{
		createFn: func(ctx context.Context, in ports.SessionInput) (*domain.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSessionHandler(svc, &stubDashboard{})

	c, _ := newContext(http.MethodPost, "/v1/sessions", `{"patientId":"1","date":"2026-10-20","status":"Missed"}`)
	if err := handler.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSessionHandler_UpdateAndDelete(t *testing.T) {
	svc := &stubSessionService{
		saveFn: func(ctx context.Context, id string, in ports.SessionInput) (*domain.Session, error) {
			return &domain.Session{ID: id, PatientID: in.PatientID, Date: in.Date, Status: domain.SessionCancelled}, nil
		},
	}
	handler := NewSessionHandler(svc, &stubDashboard{})

	c, rec := newContext(http.MethodPut, "/v1/sessions/s1", `{"patientId":"1","date":"2026-10-20","status":"Cancelled"}`)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	if err := handler.Update(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("update: %v %d", err, rec.Code)
	}

	c, rec = newContext(http.MethodDelete, "/v1/sessions/s1", "")
	c.SetParamNames("id")
	c.SetParamValues("s1")
	if err := handler.Delete(c); err != nil || rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %v %d", err, rec.Code)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "s1" {
		t.Fatalf("unexpected deletes %v", svc.deleted)
	}
}
