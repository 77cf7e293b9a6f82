// Package settings administra los ajustes editables en caliente (IA, SMTP) y el
// uso de almacenamiento.
package settings

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

// DefaultTTL vigencia de una lectura de system_settings.
const DefaultTTL = 60 * time.Second

type cacheEntry struct {
	value     json.RawMessage
	fetchedAt time.Time
}

// Cache caché TTL delante de system_settings. Get vuelve a leer tras expirar;
// Invalidate se llama después de cada escritura.
type Cache struct {
	repo repository.SettingsRepository
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache construye la caché; ttl <= 0 usa DefaultTTL.
func NewCache(repo repository.SettingsRepository, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{repo: repo, ttl: ttl, now: time.Now, entries: make(map[string]cacheEntry)}
}

// Get devuelve el JSON guardado para key (nil si no existe).
func (c *Cache) Get(ctx context.Context, key string) (json.RawMessage, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.value, nil
	}

	v, err := c.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: v, fetchedAt: c.now()}
	c.mu.Unlock()
	return v, nil
}

// Put escribe en la base e invalida la entrada.
func (c *Cache) Put(ctx context.Context, key string, value json.RawMessage) error {
	if err := c.repo.Put(ctx, key, value); err != nil {
		return err
	}
	c.Invalidate(key)
	return nil
}

// Invalidate descarta key; sin argumentos vacía la caché.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(keys) == 0 {
		c.entries = make(map[string]cacheEntry)
		return
	}
	for _, k := range keys {
		delete(c.entries, k)
	}
}
