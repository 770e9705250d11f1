package domain

import (
	"strings"
	"time"
)

// Patient is a registered patient.
type Patient struct {
	// ID is the backend's numeric identifier.
	ID int64

	// PatientNumber is the hospital-issued patient number (e.g. "GE-2024-0012").
	PatientNumber string

	FirstName string
	LastName  string
	Gender    string

	// NationalID is the national identity card number, if captured.
	NationalID string

	// DateOfBirth is nil when the patient's birth date is unknown.
	DateOfBirth *time.Time

	// AgeInYears is nil when the backend did not compute an age.
	AgeInYears *int

	Phone            string
	AlternativePhone string
}

// FullName returns "First Last", trimmed when either part is missing.
func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ContactPhone returns the primary phone, falling back to the alternative.
// Returns an empty string when neither is set.
func (p *Patient) ContactPhone() string {
	if p.Phone != "" {
		return p.Phone
	}
	return p.AlternativePhone
}
