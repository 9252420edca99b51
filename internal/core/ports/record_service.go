package ports

import (
	"context"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
)

// PatientInput is the editable part of a patient. CreatedAt is optional and
// defaults to the time of creation.
type PatientInput struct {
	FirstName string
	LastName  string
	Age       int
	Contact   string
	Pathology string
	Notes     string
	CreatedAt string
}

type PatientService interface {
	Create(ctx context.Context, in PatientInput) (*domain.Patient, error)
	// Save writes the patient under id, creating it when absent.
	Save(ctx context.Context, id string, in PatientInput) (*domain.Patient, error)
	Get(ctx context.Context, id string) (*domain.Patient, error)
	Delete(ctx context.Context, id string) error
}

// SessionInput describes a session. Date accepts any form ParseTimestamp does
// and is stored normalised. An empty Status means Scheduled.
type SessionInput struct {
	PatientID string
	Date      string
	Type      string
	Status    domain.SessionStatus
	Summary   string
}

type SessionService interface {
	Create(ctx context.Context, in SessionInput) (*domain.Session, error)
	Save(ctx context.Context, id string, in SessionInput) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// FinancialInput describes a ledger line. An empty Date means now.
type FinancialInput struct {
	Date        string
	Description string
	Amount      float64
	Type        domain.RecordType
}

// FinancialService has no update: records are added or deleted only.
type FinancialService interface {
	Create(ctx context.Context, in FinancialInput) (*domain.FinancialRecord, error)
	Delete(ctx context.Context, id string) error
}
