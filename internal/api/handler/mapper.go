package handler

import (
	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

func toPatientInput(req patientRequest) ports.PatientInput {
	return ports.PatientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Contact:   req.Contact,
		Pathology: req.Pathology,
		Notes:     req.Notes,
		CreatedAt: req.CreatedAt,
	}
}

func toSessionInput(req sessionRequest) ports.SessionInput {
	return ports.SessionInput{
		PatientID: req.PatientID,
		Date:      req.Date,
		Type:      req.Type,
		Status:    domain.SessionStatus(req.Status),
		Summary:   req.Summary,
	}
}

func toFinancialInput(req financialRequest) ports.FinancialInput {
	return ports.FinancialInput{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        domain.RecordType(req.Type),
	}
}

func toSessionViews(views []ports.SessionView) []sessionViewResponse {
	out := make([]sessionViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, sessionViewResponse{Session: v.Session, PatientName: v.PatientName})
	}
	return out
}

func toTotalsResponse(t *ports.FinancialTotals) totalsResponse {
	return totalsResponse{
		Income:  ports.FormatAmount(t.Income),
		Expense: ports.FormatAmount(t.Expense),
		Net:     ports.FormatAmount(t.Net),
	}
}

func toDashboardResponse(o *ports.DashboardOverview) dashboardResponse {
	weekly := make([]dayActivityResponse, 0, len(o.Weekly))
	for _, d := range o.Weekly {
		weekly = append(weekly, dayActivityResponse{Date: d.Date, Day: d.Day, Sessions: d.Sessions})
	}
	return dashboardResponse{
		Counts: countsResponse{
			TotalPatients:   o.Counts.TotalPatients,
			SessionsToday:   o.Counts.SessionsToday,
			PendingSessions: o.Counts.PendingSessions,
		},
		WeeklyActivity: weekly,
		StatusBreakdown: statusBreakdownResponse{
			Completed: o.Statuses.Completed,
			Scheduled: o.Statuses.Scheduled,
			Cancelled: o.Statuses.Cancelled,
		},
	}
}
