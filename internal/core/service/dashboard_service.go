package service

import (
	"context"
	"time"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

// DashboardService reads the repositories and hands the collections to the
// pure aggregation functions.
type DashboardService struct {
	patients   ports.Repository[domain.Patient]
	sessions   ports.Repository[domain.Session]
	financials ports.Repository[domain.FinancialRecord]
	now        func() time.Time
}

func NewDashboardService(
	patients ports.Repository[domain.Patient],
	sessions ports.Repository[domain.Session],
	financials ports.Repository[domain.FinancialRecord],
) *DashboardService {
	return &DashboardService{
		patients:   patients,
		sessions:   sessions,
		financials: financials,
		now:        time.Now,
	}
}

func (s *DashboardService) Overview(ctx context.Context) (*ports.DashboardOverview, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &ports.DashboardOverview{
		Counts:   ComputeDashboardCounts(patients, sessions, now),
		Weekly:   ComputeWeeklyActivity(sessions, now),
		Statuses: ComputeStatusBreakdown(sessions),
	}, nil
}

// SessionsForPatient returns the history of patientID, most recent first.
// Unknown ids, including deleted patients, are not an error.
func (s *DashboardService) SessionsForPatient(ctx context.Context, patientID string) ([]domain.Session, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	return SessionsForPatient(sessions, patientID), nil
}

// ListSessions returns the filtered sessions oldest first, each with its patient name.
func (s *DashboardService) ListSessions(ctx context.Context, filter ports.SessionFilter) ([]ports.SessionView, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	ordered := SortSessionsAscending(sessions)
	return JoinPatientNames(FilterSessions(ordered, filter), patients), nil
}

func (s *DashboardService) ListPatients(ctx context.Context, filter ports.PatientFilter) ([]domain.Patient, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPatients(patients, filter), nil
}

func (s *DashboardService) Pathologies(ctx context.Context) ([]string, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	return Pathologies(patients), nil
}

func (s *DashboardService) FinancialTotals(ctx context.Context) (*ports.FinancialTotals, error) {
	records, err := s.financials.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := ComputeFinancialTotals(records)
	return &totals, nil
}

func (s *DashboardService) RecentFinancials(ctx context.Context) ([]domain.FinancialRecord, error) {
	records, err := s.financials.List(ctx)
	if err != nil {
		return nil, err
	}
	return RecentFirst(records), nil
}
