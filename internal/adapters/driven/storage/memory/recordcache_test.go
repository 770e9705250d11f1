package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

func TestRecordCache_SaveAndListPatients(t *testing.T) {
	cache := NewRecordCache()
	ctx := context.Background()

	require.NoError(t, cache.SavePatients(ctx, []domain.Patient{
		{ID: 2, FirstName: "Moses"},
		{ID: 1, FirstName: "Aisha"},
	}))
	require.NoError(t, cache.SavePatients(ctx, []domain.Patient{
		{ID: 2, FirstName: "Moses", LastName: "Okello"},
	}))

	got, err := cache.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Okello", got[0].LastName, "update keeps first-saved position")
	assert.Equal(t, "Aisha", got[1].FirstName)
}

func TestRecordCache_ConsumablesAndStaff(t *testing.T) {
	cache := NewRecordCache()
	ctx := context.Background()

	require.NoError(t, cache.SaveConsumables(ctx, []domain.ConsumableItem{{ID: 1, Name: "Gauze"}}))
	require.NoError(t, cache.SaveStaff(ctx, []domain.StaffMember{{ID: 5, Username: "nurse"}}))

	items, err := cache.ListConsumables(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Gauze", items[0].Name)

	staff, err := cache.ListStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, "nurse", staff[0].Username)
}

func TestRecordCache_StatsAndClear(t *testing.T) {
	cache := NewRecordCache()
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, cache.SavePatients(ctx, []domain.Patient{{ID: 1}, {ID: 2}}))

	stats, err := cache.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, domain.CacheStats{Kind: domain.RecordKindPatient, Count: 2, LastSync: fixed}, stats[0])
	assert.Equal(t, domain.RecordKindConsumable, stats[1].Kind)
	assert.Zero(t, stats[1].Count)
	assert.True(t, stats[2].LastSync.IsZero())

	require.NoError(t, cache.Clear(ctx))
	patients, err := cache.ListPatients(ctx)
	require.NoError(t, err)
	assert.Empty(t, patients)
	assert.NoError(t, cache.Close())
}
