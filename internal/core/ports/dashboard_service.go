package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
)

// DashboardCounts are the headline numbers of the dashboard.
type DashboardCounts struct {
	TotalPatients   int
	SessionsToday   int
	PendingSessions int
}

// DayActivity is one point of the weekly activity series.
type DayActivity struct {
	Date     string // YYYY-MM-DD
	Day      string // short weekday name
	Sessions int
}

// StatusBreakdown counts sessions per status.
type StatusBreakdown struct {
	Completed int
	Scheduled int
	Cancelled int
}

// FinancialTotals sums the ledger. Net = Income - Expense.
type FinancialTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(d decimal.Decimal) string { return d.StringFixed(2) }

// DashboardOverview bundles everything the dashboard view renders.
type DashboardOverview struct {
	Counts   DashboardCounts
	Weekly   []DayActivity
	Statuses StatusBreakdown
}

// SessionView is a session joined with the display name of its patient.
type SessionView struct {
	domain.Session
	PatientName string
}

// SessionFilter narrows the session list. Empty fields do not filter.
type SessionFilter struct {
	Status     domain.SessionStatus
	DatePrefix string
}

// PatientFilter narrows the patient list. Empty fields do not filter.
type PatientFilter struct {
	Search    string
	Pathology string
}

// DashboardService derives view-ready data from the raw collections.
type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
	SessionsForPatient(ctx context.Context, patientID string) ([]domain.Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]SessionView, error)
	ListPatients(ctx context.Context, filter PatientFilter) ([]domain.Patient, error)
	Pathologies(ctx context.Context) ([]string, error)
	FinancialTotals(ctx context.Context) (*FinancialTotals, error)
	RecentFinancials(ctx context.Context) ([]domain.FinancialRecord, error)
}
