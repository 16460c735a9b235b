package pricetable

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v-demidov/HCS-AdmissionService/internal/core/pricing"
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

type stubLoader struct {
	calls int
	table *pricing.Table
	err   error
}

func (s *stubLoader) Load(ctx context.Context) (*pricing.Table, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.table, nil
}

func testPriceTable() *pricing.Table {
	return &pricing.Table{
		Services: map[domain.ServiceType]pricing.ServiceRates{
			domain.ServiceStandard: {BaseCents: 20000, BedroomCents: 5000, BathroomCents: 3000},
		},
		Extras:          map[string]int64{"ironing": 3000},
		ServiceFeeCents: 5000,
	}
}

func TestCache_Get_LoadsOnceWithinTTL(t *testing.T) {
	loader := &stubLoader{table: testPriceTable()}
	cache := NewCache(loader, 5*time.Minute)

	for i := 0; i < 5; i++ {
		table, err := cache.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(5000), table.ServiceFeeCents)
	}

	assert.Equal(t, 1, loader.calls)
}

func TestCache_Get_ReloadsAfterTTL(t *testing.T) {
	loader := &stubLoader{table: testPriceTable()}
	cache := NewCache(loader, 5*time.Minute)

	current := time.Now()
	cache.now = func() time.Time { return current }

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	current = current.Add(6 * time.Minute)

	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}

func TestCache_Get_ServesStaleOnLoadError(t *testing.T) {
	loader := &stubLoader{table: testPriceTable()}
	cache := NewCache(loader, 5*time.Minute)

	current := time.Now()
	cache.now = func() time.Time { return current }

	table, err := cache.Get(context.Background())
	require.NoError(t, err)

	loader.err = errors.New("db is down")
	current = current.Add(10 * time.Minute)

	stale, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, table, stale)
}

func TestCache_Get_FailsWithoutAnyCopy(t *testing.T) {
	loader := &stubLoader{err: errors.New("db is down")}
	cache := NewCache(loader, 5*time.Minute)

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}

func TestCache_Invalidate_ForcesReload(t *testing.T) {
	loader := &stubLoader{table: testPriceTable()}
	cache := NewCache(loader, 5*time.Minute)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}
