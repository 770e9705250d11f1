package rest

import (
	"strings"
	"time"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

// Backend timestamp layouts. LocalDateTime values carry no zone and are
// interpreted in the local zone.
const (
	localDateTimeLayout = "2006-01-02 15:04:05"
	localDateLayout     = "2006-01-02"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type jwtAuthResponse struct {
	AccessToken            string   `json:"accessToken"`
	RefreshToken           string   `json:"refreshToken"`
	TokenType              string   `json:"tokenType"`
	Username               string   `json:"username"`
	Email                  string   `json:"email"`
	FirstName              string   `json:"firstName"`
	LastName               string   `json:"lastName"`
	PasswordChangeRequired bool     `json:"passwordChangeRequired"`
	Roles                  []string `json:"roles"`
	AccessTokenExpiresAt   string   `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt  string   `json:"refreshTokenExpiresAt"`
}

func (r *jwtAuthResponse) toDomain() *domain.Session {
	return &domain.Session{
		AccessToken:            r.AccessToken,
		RefreshToken:           r.RefreshToken,
		TokenType:              r.TokenType,
		Username:               r.Username,
		Email:                  r.Email,
		FirstName:              r.FirstName,
		LastName:               r.LastName,
		Roles:                  r.Roles,
		PasswordChangeRequired: r.PasswordChangeRequired,
		AccessTokenExpiresAt:   parseTimestamp(r.AccessTokenExpiresAt),
		RefreshTokenExpiresAt:  parseTimestamp(r.RefreshTokenExpiresAt),
	}
}

type pageDTO[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

func toDomainPage[D any, T any](p *pageDTO[D], conv func(*D) T) *domain.Page[T] {
	out := &domain.Page[T]{
		Content:       make([]T, 0, len(p.Content)),
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
	}
	for i := range p.Content {
		out.Content = append(out.Content, conv(&p.Content[i]))
	}
	return out
}

type patientDTO struct {
	ID               int64  `json:"id"`
	PatientNumber    string `json:"patientNumber"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Gender           string `json:"gender"`
	NationalID       string `json:"nationalId"`
	DateOfBirth      string `json:"dateOfBirth"`
	AgeInYears       *int   `json:"ageInYears"`
	Phone            string `json:"phone"`
	AlternativePhone string `json:"alternativePhone"`
}

func (p *patientDTO) toDomain() domain.Patient {
	patient := domain.Patient{
		ID:               p.ID,
		PatientNumber:    p.PatientNumber,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Gender:           p.Gender,
		NationalID:       p.NationalID,
		AgeInYears:       p.AgeInYears,
		Phone:            p.Phone,
		AlternativePhone: p.AlternativePhone,
	}
	if dob := parseDate(p.DateOfBirth); !dob.IsZero() {
		patient.DateOfBirth = &dob
	}
	return patient
}

type consumableItemDTO struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CategoryName  string   `json:"categoryName"`
	SKU           string   `json:"sku"`
	UnitOfMeasure string   `json:"unitOfMeasure"`
	CurrentStock  float64  `json:"currentStock"`
	ReorderPoint  *float64 `json:"reorderPoint"`
	CostPerUnit   *float64 `json:"costPerUnit"`
	IsActive      bool     `json:"isActive"`
}

func (c *consumableItemDTO) toDomain() domain.ConsumableItem {
	item := domain.ConsumableItem{
		ID:            c.ID,
		Name:          c.Name,
		SKU:           c.SKU,
		Description:   c.Description,
		CategoryName:  c.CategoryName,
		UnitOfMeasure: c.UnitOfMeasure,
		CurrentStock:  c.CurrentStock,
		IsActive:      c.IsActive,
	}
	if c.ReorderPoint != nil {
		item.ReorderPoint = *c.ReorderPoint
	}
	if c.CostPerUnit != nil {
		item.CostPerUnit = *c.CostPerUnit
	}
	return item
}

type roleDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userDTO struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	DepartmentName string    `json:"departmentName"`
	Roles          []roleDTO `json:"roles"`
}

func (u *userDTO) toDomain() domain.StaffMember {
	m := domain.StaffMember{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		DepartmentName: u.DepartmentName,
		Roles:          make([]domain.Role, 0, len(u.Roles)),
	}
	for _, r := range u.Roles {
		m.Roles = append(m.Roles, domain.Role{ID: r.ID, Name: r.Name})
	}
	return m
}

type consumableUsageRequest struct {
	ConsumableItemID int64   `json:"consumableItemId"`
	QuantityUsed     float64 `json:"quantityUsed"`
	PatientID        *int64  `json:"patientId,omitempty"`
	Purpose          string  `json:"purpose,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

func newConsumableUsageRequest(u domain.ConsumableUsage) consumableUsageRequest {
	req := consumableUsageRequest{
		ConsumableItemID: u.ConsumableItemID,
		QuantityUsed:     u.QuantityUsed,
		Purpose:          u.Purpose,
		Notes:            u.Notes,
	}
	if u.PatientID > 0 {
		id := u.PatientID
		req.PatientID = &id
	}
	return req
}

// parseTimestamp accepts the backend's LocalDateTime layout or RFC 3339.
// Unparseable values yield the zero time.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(localDateTimeLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// parseDate accepts "2006-01-02", optionally followed by a time part.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if len(s) < len(localDateLayout) {
		return time.Time{}
	}
	t, err := time.ParseInLocation(localDateLayout, s[:len(localDateLayout)], time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
