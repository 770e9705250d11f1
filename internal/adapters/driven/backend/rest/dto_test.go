package rest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"local date time", "2026-03-01 10:30:00", time.Date(2026, 3, 1, 10, 30, 0, 0, time.Local)},
		{"rfc3339", "2026-03-01T10:30:00Z", time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "yesterday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(parseTimestamp(tt.in)), "got %v", parseTimestamp(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, time.Date(1990, 3, 4, 0, 0, 0, 0, time.Local), parseDate("1990-03-04"))
	assert.Equal(t, time.Date(1990, 3, 4, 0, 0, 0, 0, time.Local), parseDate("1990-03-04T00:00:00"))
	assert.True(t, parseDate("1990").IsZero())
	assert.True(t, parseDate("not-a-date").IsZero())
}

func TestPatientDTO_ToDomain(t *testing.T) {
	var dto patientDTO
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 12, "patientNumber": "GE-12", "firstName": "Grace", "lastName": "Aine",
		"nationalId": "CM123", "dateOfBirth": null, "ageInYears": null,
		"phone": "0701111111", "alternativePhone": null
	}`), &dto))

	p := dto.toDomain()

	assert.Equal(t, int64(12), p.ID)
	assert.Equal(t, "Grace Aine", p.FullName())
	assert.Nil(t, p.DateOfBirth)
	assert.Nil(t, p.AgeInYears)
	assert.Empty(t, p.AlternativePhone)
}

func TestToDomainPage(t *testing.T) {
	dto := pageDTO[userDTO]{
		Content: []userDTO{
			{ID: 1, Username: "a", Roles: []roleDTO{{ID: 1, Name: "ADMIN"}}},
			{ID: 2, Username: "b"},
		},
		TotalElements: 5,
		TotalPages:    3,
		Number:        2,
		Size:          2,
	}

	page := toDomainPage(&dto, (*userDTO).toDomain)

	require.Len(t, page.Content, 2)
	assert.Equal(t, []string{"ADMIN"}, page.Content[0].RoleNames())
	assert.Empty(t, page.Content[1].Roles)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.True(t, page.Last())
}

func TestNewConsumableUsageRequest(t *testing.T) {
	req := newConsumableUsageRequest(domain.ConsumableUsage{
		ConsumableItemID: 3, QuantityUsed: 2, PatientID: 9, Purpose: "Surgery",
	})
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"consumableItemId":3,"quantityUsed":2,"patientId":9,"purpose":"Surgery"}`, string(data))
}

func TestAPIError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &APIError{Status: 401}, domain.ErrAuthExpired)
	assert.ErrorIs(t, &APIError{Status: 409}, domain.ErrInvalidInput)
	assert.ErrorIs(t, &APIError{Status: 503}, domain.ErrBackendUnavailable)
	assert.NoError(t, (&APIError{Status: 418}).Unwrap())
	assert.Equal(t, "backend returned 418", (&APIError{Status: 418}).Error())
}
