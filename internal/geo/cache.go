package geo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fitlyapps/fitly-api/internal/models"
)

// DefaultCacheTTL bounds how long an autocomplete result may be reused.
const DefaultCacheTTL = time.Hour

// SuggestionCache stores autocomplete results keyed on normalized input text.
// Implementations must tolerate concurrent readers and writers; last write
// wins.
type SuggestionCache interface {
	Get(ctx context.Context, text string) ([]models.CitySuggestion, bool)
	Set(ctx context.Context, text string, suggestions []models.CitySuggestion)
}

// CacheKey normalizes input text so "Paris ", "paris" and "PARIS" share one
// cache entry.
func CacheKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

type memoryEntry struct {
	suggestions []models.CitySuggestion
	expiresAt   time.Time
}

// MemoryCache is a process-local SuggestionCache with per-entry TTL.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, text string) ([]models.CitySuggestion, bool) {
	key := CacheKey(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.suggestions, true
}

func (c *MemoryCache) Set(_ context.Context, text string, suggestions []models.CitySuggestion) {
	key := CacheKey(text)
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{
		suggestions: suggestions,
		expiresAt:   c.now().Add(c.ttl),
	}
}
