package memory

import (
	"context"
	"sync"
	"time"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
)

// Ensure RecordCache implements the interface.
var _ driven.RecordCache = (*RecordCache)(nil)

// RecordCache is an in-memory implementation of driven.RecordCache.
// Records are listed in the order they were first saved.
type RecordCache struct {
	mu          sync.RWMutex
	patients    table[domain.Patient]
	consumables table[domain.ConsumableItem]
	staff       table[domain.StaffMember]
	now         func() time.Time
}

type table[T any] struct {
	order    []int64
	rows     map[int64]T
	lastSync time.Time
}

func (t *table[T]) put(id int64, rec T, now time.Time) {
	if t.rows == nil {
		t.rows = make(map[int64]T)
	}
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = rec
	t.lastSync = now
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) stats(kind domain.RecordKind) domain.CacheStats {
	return domain.CacheStats{Kind: kind, Count: len(t.order), LastSync: t.lastSync}
}

// NewRecordCache creates a new in-memory record cache.
func NewRecordCache() *RecordCache {
	return &RecordCache{now: time.Now}
}

// SavePatients stores or updates patients by ID.
func (c *RecordCache) SavePatients(_ context.Context, patients []domain.Patient) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for _, p := range patients {
		c.patients.put(p.ID, p, now)
	}
	return nil
}

// ListPatients returns every cached patient.
func (c *RecordCache) ListPatients(_ context.Context) ([]domain.Patient, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.patients.list(), nil
}

// SaveConsumables stores or updates consumable items by ID.
func (c *RecordCache) SaveConsumables(_ context.Context, items []domain.ConsumableItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for _, item := range items {
		c.consumables.put(item.ID, item, now)
	}
	return nil
}

// ListConsumables returns every cached consumable item.
func (c *RecordCache) ListConsumables(_ context.Context) ([]domain.ConsumableItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.consumables.list(), nil
}

// SaveStaff stores or updates staff members by ID.
func (c *RecordCache) SaveStaff(_ context.Context, staff []domain.StaffMember) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for _, m := range staff {
		c.staff.put(m.ID, m, now)
	}
	return nil
}

// ListStaff returns every cached staff member.
func (c *RecordCache) ListStaff(_ context.Context) ([]domain.StaffMember, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.staff.list(), nil
}

// Stats returns per-kind counts.
func (c *RecordCache) Stats(_ context.Context) ([]domain.CacheStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return []domain.CacheStats{
		c.patients.stats(domain.RecordKindPatient),
		c.consumables.stats(domain.RecordKindConsumable),
		c.staff.stats(domain.RecordKindStaff),
	}, nil
}

// Clear removes every cached record.
func (c *RecordCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patients = table[domain.Patient]{}
	c.consumables = table[domain.ConsumableItem]{}
	c.staff = table[domain.StaffMember]{}
	return nil
}

// Close is a no-op for the memory cache.
func (c *RecordCache) Close() error {
	return nil
}
