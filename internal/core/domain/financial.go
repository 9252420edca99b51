package domain

// RecordType tells income and expense apart.
type RecordType string

const (
	RecordIncome  RecordType = "income"
	RecordExpense RecordType = "expense"
)

// FinancialRecord is an immutable ledger line. Records are only ever added
// or deleted.
type FinancialRecord struct {
	ID          string     `json:"id"          validate:"required"`
	Date        string     `json:"date"`
	Description string     `json:"description" validate:"required"`
	Amount      float64    `json:"amount"      validate:"gte=0"`
	Type        RecordType `json:"type"        validate:"required,oneof=income expense"`
}

func (r FinancialRecord) EntityID() string { return r.ID }

func (r FinancialRecord) Validate() error { return validateStruct(r) }
