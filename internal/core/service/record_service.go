package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

// normalizeDate parses s and re-renders it in the stored UTC format. Empty
// input falls back to now.
func normalizeDate(s string, now time.Time) (string, error) {
	if s == "" {
		return domain.FormatTimestamp(now), nil
	}
	t, err := domain.ParseTimestamp(s)
	if err != nil {
		return "", err
	}
	return domain.FormatTimestamp(t), nil
}

// PatientService builds patients from form input and stores them.
type PatientService struct {
	repo  ports.Repository[domain.Patient]
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewPatientService(repo ports.Repository[domain.Patient], log zerolog.Logger) *PatientService {
	return &PatientService{repo: repo, log: log, now: time.Now, newID: uuid.NewString}
}

func (s *PatientService) Create(ctx context.Context, in ports.PatientInput) (*domain.Patient, error) {
	return s.Save(ctx, s.newID(), in)
}

// Save keeps the stored CreatedAt of an existing patient when in.CreatedAt
// is empty.
func (s *PatientService) Save(ctx context.Context, id string, in ports.PatientInput) (*domain.Patient, error) {
	if in.CreatedAt == "" {
		existing, ok, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			in.CreatedAt = existing.CreatedAt
		}
	}
	createdAt, err := normalizeDate(in.CreatedAt, s.now())
	if err != nil {
		return nil, err
	}
	p := domain.Patient{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Age:       in.Age,
		Contact:   in.Contact,
		Pathology: in.Pathology,
		Notes:     in.Notes,
		CreatedAt: createdAt,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Str("patient_id", id).Msg("patient saved")
	return &p, nil
}

func (s *PatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	p, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("patient %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

// Delete leaves the patient's sessions in place.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("patient_id", id).Msg("patient deleted")
	return nil
}

// SessionService builds sessions from form input and stores them.
type SessionService struct {
	repo  ports.Repository[domain.Session]
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewSessionService(repo ports.Repository[domain.Session], log zerolog.Logger) *SessionService {
	return &SessionService{repo: repo, log: log, now: time.Now, newID: uuid.NewString}
}

func (s *SessionService) Create(ctx context.Context, in ports.SessionInput) (*domain.Session, error) {
	return s.Save(ctx, s.newID(), in)
}

func (s *SessionService) Save(ctx context.Context, id string, in ports.SessionInput) (*domain.Session, error) {
	if in.Date == "" {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	date, err := normalizeDate(in.Date, s.now())
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.SessionScheduled
	}
	sess := domain.Session{
		ID:        id,
		PatientID: in.PatientID,
		Date:      date,
		Type:      in.Type,
		Status:    status,
		Summary:   in.Summary,
	}
	if err := s.repo.Upsert(ctx, sess); err != nil {
		return nil, err
	}
	s.log.Info().Str("session_id", id).Str("status", string(status)).Msg("session saved")
	return &sess, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// FinancialService appends and removes ledger lines.
type FinancialService struct {
	repo  ports.Repository[domain.FinancialRecord]
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewFinancialService(repo ports.Repository[domain.FinancialRecord], log zerolog.Logger) *FinancialService {
	return &FinancialService{repo: repo, log: log, now: time.Now, newID: uuid.NewString}
}

func (s *FinancialService) Create(ctx context.Context, in ports.FinancialInput) (*domain.FinancialRecord, error) {
	date, err := normalizeDate(in.Date, s.now())
	if err != nil {
		return nil, err
	}
	rec := domain.FinancialRecord{
		ID:          s.newID(),
		Date:        date,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	s.log.Info().Str("record_id", rec.ID).Str("type", string(rec.Type)).Msg("financial record added")
	return &rec, nil
}

func (s *FinancialService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}
