package services

import (
	"context"
	"sync"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
)

// mockBackend implements driven.Backend for testing.
type mockBackend struct {
	mu    sync.Mutex
	calls []string

	LoginFunc             func(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	RefreshFunc           func(ctx context.Context, refreshToken string) (*domain.Session, error)
	SearchPatientsFunc    func(ctx context.Context, query string, page domain.Pageable) (*domain.Page[domain.Patient], error)
	ListPatientsFunc      func(ctx context.Context, page domain.Pageable) (*domain.Page[domain.Patient], error)
	SearchConsumablesFunc func(ctx context.Context, query string) ([]domain.ConsumableItem, error)
	ListConsumablesFunc   func(ctx context.Context, page domain.Pageable) (*domain.Page[domain.ConsumableItem], error)
	ListStaffFunc         func(ctx context.Context, page domain.Pageable) (*domain.Page[domain.StaffMember], error)
	RecordUsageFunc       func(ctx context.Context, usage domain.ConsumableUsage) error
}

var _ driven.Backend = (*mockBackend)(nil)

func (m *mockBackend) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockBackend) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	m.record("Login")
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return &domain.Session{Username: creds.Username}, nil
}

func (m *mockBackend) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	m.record("Refresh")
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenRefreshFailed
}

func (m *mockBackend) SearchPatients(
	ctx context.Context, query string, page domain.Pageable,
) (*domain.Page[domain.Patient], error) {
	m.record("SearchPatients")
	if m.SearchPatientsFunc != nil {
		return m.SearchPatientsFunc(ctx, query, page)
	}
	return &domain.Page[domain.Patient]{}, nil
}

func (m *mockBackend) ListPatients(ctx context.Context, page domain.Pageable) (*domain.Page[domain.Patient], error) {
	m.record("ListPatients")
	if m.ListPatientsFunc != nil {
		return m.ListPatientsFunc(ctx, page)
	}
	return &domain.Page[domain.Patient]{}, nil
}

func (m *mockBackend) SearchConsumables(ctx context.Context, query string) ([]domain.ConsumableItem, error) {
	m.record("SearchConsumables")
	if m.SearchConsumablesFunc != nil {
		return m.SearchConsumablesFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockBackend) ListConsumables(
	ctx context.Context, page domain.Pageable,
) (*domain.Page[domain.ConsumableItem], error) {
	m.record("ListConsumables")
	if m.ListConsumablesFunc != nil {
		return m.ListConsumablesFunc(ctx, page)
	}
	return &domain.Page[domain.ConsumableItem]{}, nil
}

func (m *mockBackend) ListStaff(ctx context.Context, page domain.Pageable) (*domain.Page[domain.StaffMember], error) {
	m.record("ListStaff")
	if m.ListStaffFunc != nil {
		return m.ListStaffFunc(ctx, page)
	}
	return &domain.Page[domain.StaffMember]{}, nil
}

func (m *mockBackend) RecordUsage(ctx context.Context, usage domain.ConsumableUsage) error {
	m.record("RecordUsage")
	if m.RecordUsageFunc != nil {
		return m.RecordUsageFunc(ctx, usage)
	}
	return nil
}
