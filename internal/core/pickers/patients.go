package pickers

import (
	"fmt"
	"strconv"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/selector"
)

const notAvailable = "N/A"

// Patients returns the patient selector strategy.
func Patients() selector.Strategy[domain.Patient] {
	firstName := selector.StringField("firstName", func(p domain.Patient) string { return p.FirstName })
	return selector.Strategy[domain.Patient]{
		Label:       "Patient",
		Placeholder: "Search for patient by name, phone, or ID...",
		Config: selector.Config[domain.Patient]{
			Fields: []selector.Field[domain.Patient]{
				firstName,
				selector.StringField("lastName", func(p domain.Patient) string { return p.LastName }),
				selector.StringField("phone", func(p domain.Patient) string { return p.Phone }),
				selector.StringField("alternativePhone", func(p domain.Patient) string { return p.AlternativePhone }),
				selector.StringField("nationalId", func(p domain.Patient) string { return p.NationalID }),
				selector.StringField("patientNumber", func(p domain.Patient) string { return p.PatientNumber }),
			},
			MinQueryLength:   selector.DefaultMinQueryLength,
			Display:          firstName,
			NoResultsMessage: "No patients found",
		},
		Renderer: selector.Renderer[domain.Patient]{
			Candidate: patientLines,
		},
	}
}

func patientLines(p domain.Patient) []string {
	phone := p.ContactPhone()
	if phone == "" {
		phone = notAvailable
	}

	lines := []string{
		p.FullName(),
		fmt.Sprintf("%s • Phone: %s", p.PatientNumber, phone),
	}
	if p.DateOfBirth != nil {
		age := notAvailable
		if p.AgeInYears != nil && *p.AgeInYears > 0 {
			age = strconv.Itoa(*p.AgeInYears)
		}
		lines = append(lines, fmt.Sprintf("DOB: %s • Age: %s", p.DateOfBirth.Format("02/01/2006"), age))
	}
	return lines
}
