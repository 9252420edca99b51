package service

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

// The functions in this file are pure: they never modify their inputs and
// give the same answer for the same collections.

// SessionsForPatient returns the sessions of patientID, most recent first.
func SessionsForPatient(sessions []domain.Session, patientID string) []domain.Session {
	out := make([]domain.Session, 0)
	for _, s := range sessions {
		if s.PatientID == patientID {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Session) int {
		return compareDates(b.Date, a.Date)
	})
	return out
}

// SortSessionsAscending returns a copy of sessions ordered oldest first.
func SortSessionsAscending(sessions []domain.Session) []domain.Session {
	out := slices.Clone(sessions)
	if out == nil {
		out = []domain.Session{}
	}
	slices.SortStableFunc(out, func(a, b domain.Session) int {
		return compareDates(a.Date, b.Date)
	})
	return out
}

// compareDates orders two timestamps chronologically. Values that do not
// parse fall back to plain string ordering, which is chronological for ISO
// strings anyway.
func compareDates(a, b string) int {
	ta, errA := domain.ParseTimestamp(a)
	tb, errB := domain.ParseTimestamp(b)
	if errA == nil && errB == nil {
		return ta.Compare(tb)
	}
	return strings.Compare(a, b)
}

// ComputeDashboardCounts derives the headline numbers. "Today" is a prefix
// match on the UTC calendar day of now, not a time-range check.
func ComputeDashboardCounts(patients []domain.Patient, sessions []domain.Session, now time.Time) ports.DashboardCounts {
	today := domain.DatePrefix(now)
	counts := ports.DashboardCounts{TotalPatients: len(patients)}
	for _, s := range sessions {
		if strings.HasPrefix(s.Date, today) {
			counts.SessionsToday++
		}
		if s.Status == domain.SessionScheduled {
			counts.PendingSessions++
		}
	}
	return counts
}

// ComputeWeeklyActivity counts sessions for each of the last seven days,
// today included, oldest first.
func ComputeWeeklyActivity(sessions []domain.Session, now time.Time) []ports.DayActivity {
	days := make([]ports.DayActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		d := now.UTC().AddDate(0, 0, -i)
		prefix := domain.DatePrefix(d)
		n := 0
		for _, s := range sessions {
			if strings.HasPrefix(s.Date, prefix) {
				n++
			}
		}
		days = append(days, ports.DayActivity{
			Date:     prefix,
			Day:      d.Weekday().String()[:3],
			Sessions: n,
		})
	}
	return days
}

// ComputeStatusBreakdown counts sessions per status. Unknown statuses are ignored.
func ComputeStatusBreakdown(sessions []domain.Session) ports.StatusBreakdown {
	var b ports.StatusBreakdown
	for _, s := range sessions {
		switch s.Status {
		case domain.SessionCompleted:
			b.Completed++
		case domain.SessionScheduled:
			b.Scheduled++
		case domain.SessionCancelled:
			b.Cancelled++
		}
	}
	return b
}

// ComputeFinancialTotals sums income and expense. Amounts are added as
// decimals so the totals carry no binary rounding noise.
func ComputeFinancialTotals(records []domain.FinancialRecord) ports.FinancialTotals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, r := range records {
		amount := decimal.NewFromFloat(r.Amount)
		switch r.Type {
		case domain.RecordIncome:
			income = income.Add(amount)
		case domain.RecordExpense:
			expense = expense.Add(amount)
		}
	}
	return ports.FinancialTotals{
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}
}

// RecentFirst returns the records newest entry first (reverse storage order).
func RecentFirst(records []domain.FinancialRecord) []domain.FinancialRecord {
	out := slices.Clone(records)
	if out == nil {
		out = []domain.FinancialRecord{}
	}
	slices.Reverse(out)
	return out
}

// FilterPatients keeps patients whose first or last name contains the search
// term (case-insensitive) and whose pathology equals filter.Pathology when set.
func FilterPatients(patients []domain.Patient, filter ports.PatientFilter) []domain.Patient {
	out := make([]domain.Patient, 0, len(patients))
	for _, p := range patients {
		if !p.MatchesSearch(filter.Search) {
			continue
		}
		if filter.Pathology != "" && p.Pathology != filter.Pathology {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Pathologies lists the distinct non-empty pathologies in first-seen order.
func Pathologies(patients []domain.Patient) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range patients {
		if p.Pathology == "" {
			continue
		}
		if _, ok := seen[p.Pathology]; ok {
			continue
		}
		seen[p.Pathology] = struct{}{}
		out = append(out, p.Pathology)
	}
	return out
}

// FilterSessions keeps sessions matching the status and date prefix of filter.
func FilterSessions(sessions []domain.Session, filter ports.SessionFilter) []domain.Session {
	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.DatePrefix != "" && !strings.HasPrefix(s.Date, filter.DatePrefix) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// JoinPatientNames pairs each session with the display name of its patient.
func JoinPatientNames(sessions []domain.Session, patients []domain.Patient) []ports.SessionView {
	out := make([]ports.SessionView, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, ports.SessionView{
			Session:     s,
			PatientName: domain.PatientDisplayName(patients, s.PatientID),
		})
	}
	return out
}
