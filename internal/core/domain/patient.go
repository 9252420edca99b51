package domain

import "strings"

// UnknownPatient is shown in place of a name when a session points at a
// patient id that no longer exists.
const UnknownPatient = "Unknown patient"

// Patient is a person followed by the practice.
type Patient struct {
	ID        string `json:"id"        validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Age       int    `json:"age"       validate:"gte=0"`
	Contact   string `json:"contact"`
	Pathology string `json:"pathology"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
}

func (p Patient) EntityID() string { return p.ID }

func (p Patient) Validate() error { return validateStruct(p) }

// DisplayName renders "Last, First".
func (p Patient) DisplayName() string {
	return p.LastName + ", " + p.FirstName
}

// MatchesSearch reports whether term is a case-insensitive substring of the
// first or last name. An empty term matches everyone.
func (p Patient) MatchesSearch(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.LastName), term) ||
		strings.Contains(strings.ToLower(p.FirstName), term)
}

// PatientDisplayName looks id up in patients and falls back to UnknownPatient.
func PatientDisplayName(patients []Patient, id string) string {
	for _, p := range patients {
		if p.ID == id {
			return p.DisplayName()
		}
	}
	return UnknownPatient
}
