package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatient_FullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Aisha", "Nakato", "Aisha Nakato"},
		{"Aisha", "", "Aisha"},
		{"", "Nakato", "Nakato"},
		{"", "", ""},
	}

	for _, tt := range tests {
		p := Patient{FirstName: tt.first, LastName: tt.last}
		assert.Equal(t, tt.want, p.FullName())
	}
}

func TestPatient_ContactPhone(t *testing.T) {
	p := Patient{Phone: "0772", AlternativePhone: "0701"}
	assert.Equal(t, "0772", p.ContactPhone())

	p.Phone = ""
	assert.Equal(t, "0701", p.ContactPhone())

	p.AlternativePhone = ""
	assert.Empty(t, p.ContactPhone())
}
