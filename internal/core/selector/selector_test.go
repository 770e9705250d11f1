package selector

import (
	"fmt"
	"strings"
)

// person is the record type used across the selector tests.
type person struct {
	ID        int
	FirstName string
	LastName  string
	Phone     string
	Number    *int
}

func intPtr(v int) *int { return &v }

func peopleConfig() Config[person] {
	return Config[person]{
		Fields: []Field[person]{
			StringField("firstName", func(p person) string { return p.FirstName }),
			StringField("lastName", func(p person) string { return p.LastName }),
			StringField("phone", func(p person) string { return p.Phone }),
			{Name: "number", Value: func(p person) any { return p.Number }},
		},
		MinQueryLength:   2,
		Display:          StringField("firstName", func(p person) string { return p.FirstName }),
		NoResultsMessage: "No people found",
	}
}

func people() []person {
	return []person{
		{ID: 1, FirstName: "Aisha", LastName: "Nakato", Phone: "0772000001", Number: intPtr(1001)},
		{ID: 2, FirstName: "Moses", LastName: "Okello", Phone: "0772000002"},
		{ID: 3, FirstName: "Grace", LastName: "Aine", Phone: "0701111111", Number: intPtr(2002)},
	}
}

func fullName(p person) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.FirstName, p.LastName))
}
