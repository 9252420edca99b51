// Package export renders collections as CSV files for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

var (
	patientHeader   = []string{"ID", "First name", "Last name", "Age", "Contact", "Pathology", "Created"}
	financialHeader = []string{"Date", "Description", "Type", "Amount"}
)

// WritePatients writes one row per patient in the given order.
func WritePatients(w io.Writer, patients []domain.Patient) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(patientHeader); err != nil {
		return fmt.Errorf("export patients: %w", err)
	}
	for _, p := range patients {
		row := []string{
			p.ID,
			p.FirstName,
			p.LastName,
			strconv.Itoa(p.Age),
			p.Contact,
			p.Pathology,
			day(p.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export patients: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFinancials writes one row per record in storage order.
func WriteFinancials(w io.Writer, records []domain.FinancialRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(financialHeader); err != nil {
		return fmt.Errorf("export financials: %w", err)
	}
	for _, r := range records {
		row := []string{
			day(r.Date),
			r.Description,
			typeLabel(r.Type),
			ports.FormatAmount(decimal.NewFromFloat(r.Amount)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export financials: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// day keeps unparsable timestamps as they are.
func day(ts string) string {
	t, err := domain.ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return domain.DatePrefix(t)
}

func typeLabel(t domain.RecordType) string {
	switch t {
	case domain.RecordIncome:
		return "Income"
	case domain.RecordExpense:
		return "Expense"
	}
	return string(t)
}
