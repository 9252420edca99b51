package handler

import "github.com/psychodash/practice-dashboard/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Patients ---

type patientRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Age       int    `json:"age"       validate:"gte=0"`
	Contact   string `json:"contact"`
	Pathology string `json:"pathology"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
}

type summaryRequest struct {
	// Notes overrides the stored notes, e.g. an unsaved draft.
	Notes string `json:"notes"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
	// Notes is the input with the summary appended. Nothing is saved.
	Notes     string `json:"notes"`
	Generated bool   `json:"generated"`
}

// --- Sessions ---

type sessionRequest struct {
	PatientID string `json:"patientId" validate:"required"`
	Date      string `json:"date"      validate:"required"`
	Type      string `json:"type"`
	Status    string `json:"status"    validate:"omitempty,oneof=Scheduled Completed Cancelled"`
	Summary   string `json:"summary"`
}

type sessionViewResponse struct {
	domain.Session
	PatientName string `json:"patientName"`
}

// --- Financials ---

type financialRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount"      validate:"gte=0"`
	Type        string  `json:"type"        validate:"required,oneof=income expense"`
}

type totalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// --- Dashboard ---

type countsResponse struct {
	TotalPatients   int `json:"totalPatients"`
	SessionsToday   int `json:"sessionsToday"`
	PendingSessions int `json:"pendingSessions"`
}

type dayActivityResponse struct {
	Date     string `json:"date"`
	Day      string `json:"day"`
	Sessions int    `json:"sessions"`
}

type statusBreakdownResponse struct {
	Completed int `json:"completed"`
	Scheduled int `json:"scheduled"`
	Cancelled int `json:"cancelled"`
}

type dashboardResponse struct {
	Counts          countsResponse          `json:"counts"`
	WeeklyActivity  []dayActivityResponse   `json:"weeklyActivity"`
	StatusBreakdown statusBreakdownResponse `json:"statusBreakdown"`
}
