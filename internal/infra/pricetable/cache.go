// Package pricetable кеширует прайс-лист поверх репозитория.
// Прайс меняется редко, поэтому короткий TTL заметно снижает нагрузку на БД
// без отдельного механизма инвалидации.
package pricetable

import (
	"context"
	"sync"
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/core/pricing"
)

// Loader источник прайс-листа (репозиторий pricelist)
type Loader interface {
	Load(ctx context.Context) (*pricing.Table, error)
}

// Cache потокобезопасный кеш прайс-листа с TTL. Одновременные промахи
// сворачиваются в одну загрузку из БД.
type Cache struct {
	loader Loader
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	table    *pricing.Table
	loadedAt time.Time
}

// NewCache создает кеш поверх загрузчика прайс-листа
func NewCache(loader Loader, ttl time.Duration) *Cache {
	return &Cache{
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get возвращает актуальный прайс-лист, при необходимости перечитывая его из
// БД. Если перечитать не удалось, а в кеше есть устаревшая копия, возвращается
// она: допуск с несвежим прайсом лучше отказа в допуске.
func (c *Cache) Get(ctx context.Context) (*pricing.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil && c.now().Sub(c.loadedAt) < c.ttl {
		return c.table, nil
	}

	table, err := c.loader.Load(ctx)
	if err != nil {
		if c.table != nil {
			return c.table, nil
		}
		return nil, err
	}

	c.table = table
	c.loadedAt = c.now()

	return table, nil
}

// Invalidate сбрасывает кеш; следующий Get перечитает прайс из БД
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = nil
}
