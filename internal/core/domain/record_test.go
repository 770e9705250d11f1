package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordKind(t *testing.T) {
	tests := []struct {
		in   string
		want RecordKind
	}{
		{"patients", RecordKindPatient},
		{"patient", RecordKindPatient},
		{"consumables", RecordKindConsumable},
		{"consumable", RecordKindConsumable},
		{"staff", RecordKindStaff},
		{"personnel", RecordKindStaff},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRecordKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecordKind_Unknown(t *testing.T) {
	_, err := ParseRecordKind("visits")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestRecordKinds(t *testing.T) {
	assert.Equal(t, []RecordKind{RecordKindPatient, RecordKindConsumable, RecordKindStaff}, RecordKinds())
	assert.Equal(t, "staff", RecordKindStaff.String())
}
