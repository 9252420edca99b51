package domain

// SessionStatus is the lifecycle state of a therapy session.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "Scheduled"
	SessionCompleted SessionStatus = "Completed"
	SessionCancelled SessionStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// Session is a single appointment. PatientID is not checked against the
// patient collection: deleting a patient leaves its sessions in place.
type Session struct {
	ID        string        `json:"id"        validate:"required"`
	PatientID string        `json:"patientId" validate:"required"`
	Date      string        `json:"date"      validate:"required"`
	Type      string        `json:"type"`
	Status    SessionStatus `json:"status"    validate:"required,oneof=Scheduled Completed Cancelled"`
	Summary   string        `json:"summary"`
}

func (s Session) EntityID() string { return s.ID }

func (s Session) Validate() error { return validateStruct(s) }
