package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
)

//go:embed fixtures/default.yaml
var defaultFixtures []byte

// Fixtures is the demo data set written by the seeder. Dates are expressed
// as whole-day offsets from the moment of seeding.
type Fixtures struct {
	Patients   []patientFixture   `yaml:"patients"`
	Sessions   []sessionFixture   `yaml:"sessions"`
	Financials []financialFixture `yaml:"financials"`
}

type patientFixture struct {
	ID        string `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Age       int    `yaml:"age"`
	Contact   string `yaml:"contact"`
	Pathology string `yaml:"pathology"`
	Notes     string `yaml:"notes"`
	DayOffset int    `yaml:"day_offset"`
}

type sessionFixture struct {
	ID        string `yaml:"id"`
	PatientID string `yaml:"patient_id"`
	DayOffset int    `yaml:"day_offset"`
	Type      string `yaml:"type"`
	Status    string `yaml:"status"`
	Summary   string `yaml:"summary"`
}

type financialFixture struct {
	ID          string  `yaml:"id"`
	Description string  `yaml:"description"`
	Amount      float64 `yaml:"amount"`
	Type        string  `yaml:"type"`
	DayOffset   int     `yaml:"day_offset"`
}

// DefaultFixtures returns the built-in demo data.
func DefaultFixtures() (*Fixtures, error) {
	return LoadFixtures(bytes.NewReader(defaultFixtures))
}

// LoadFixtures parses a YAML fixture document.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	return &f, nil
}

// LoadFixturesFile reads fixtures from path, or the defaults when path is empty.
func LoadFixturesFile(path string) (*Fixtures, error) {
	if path == "" {
		return DefaultFixtures()
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	defer fh.Close()
	return LoadFixtures(fh)
}

func at(now time.Time, dayOffset int) string {
	return domain.FormatTimestamp(now.Add(time.Duration(dayOffset) * 24 * time.Hour))
}

// Build materialises the fixtures relative to now.
func (f *Fixtures) Build(now time.Time) ([]domain.Patient, []domain.Session, []domain.FinancialRecord) {
	patients := make([]domain.Patient, 0, len(f.Patients))
	for _, p := range f.Patients {
		patients = append(patients, domain.Patient{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Age:       p.Age,
			Contact:   p.Contact,
			Pathology: p.Pathology,
			Notes:     p.Notes,
			CreatedAt: at(now, p.DayOffset),
		})
	}

	sessions := make([]domain.Session, 0, len(f.Sessions))
	for _, s := range f.Sessions {
		sessions = append(sessions, domain.Session{
			ID:        s.ID,
			PatientID: s.PatientID,
			Date:      at(now, s.DayOffset),
			Type:      s.Type,
			Status:    domain.SessionStatus(s.Status),
			Summary:   s.Summary,
		})
	}

	records := make([]domain.FinancialRecord, 0, len(f.Financials))
	for _, r := range f.Financials {
		records = append(records, domain.FinancialRecord{
			ID:          r.ID,
			Date:        at(now, r.DayOffset),
			Description: r.Description,
			Amount:      r.Amount,
			Type:        domain.RecordType(r.Type),
		})
	}

	return patients, sessions, records
}

// Seeder writes the demo collections into an empty store.
type Seeder struct {
	store    *Store
	fixtures *Fixtures
	now      func() time.Time
	log      zerolog.Logger
}

func NewSeeder(store *Store, fixtures *Fixtures, log zerolog.Logger) *Seeder {
	return &Seeder{store: store, fixtures: fixtures, now: time.Now, log: log}
}

// SeedIfAbsent writes each fixture collection whose key is absent. Presence
// is checked per key, so a collection removed by hand is re-seeded on its
// own while the others are left alone. It returns the keys it wrote.
func (s *Seeder) SeedIfAbsent(ctx context.Context) ([]string, error) {
	patients, sessions, records := s.fixtures.Build(s.now())

	steps := []struct {
		key   string
		value any
	}{
		{KeyPatients, patients},
		{KeySessions, sessions},
		{KeyFinancials, records},
	}

	var written []string
	for _, step := range steps {
		exists, err := s.store.Exists(ctx, step.key)
		if err != nil {
			return written, fmt.Errorf("seed %s: %w", step.key, err)
		}
		if exists {
			continue
		}
		if err := s.store.Set(ctx, step.key, step.value); err != nil {
			return written, fmt.Errorf("seed %s: %w", step.key, err)
		}
		written = append(written, step.key)
	}

	if len(written) > 0 {
		s.log.Info().Strs("keys", written).Msg("seeded demo data")
	}
	return written, nil
}
