package geo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fitlyapps/fitly-api/internal/models"
)

func suggestionFixture(city string) []models.CitySuggestion {
	return []models.CitySuggestion{{City: city, Lat: 48.85, Lon: 2.35, Label: city + ", France"}}
}

func TestMemoryCacheNormalizesKeys(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx := context.Background()

	cache.Set(ctx, "  Paris ", suggestionFixture("Paris"))

	got, ok := cache.Get(ctx, "PARIS")
	if !ok {
		t.Fatal("expected cache hit for normalized key")
	}
	if len(got) != 1 || got[0].City != "Paris" {
		t.Fatalf("unexpected cached value: %+v", got)
	}
}

func TestMemoryCacheExpiresEntries(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, "paris", suggestionFixture("Paris"))

	now = now.Add(59 * time.Minute)
	if _, ok := cache.Get(ctx, "paris"); !ok {
		t.Fatal("expected hit before TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get(ctx, "paris"); ok {
		t.Fatal("expected miss after TTL")
	}
}

func TestMemoryCacheIgnoresBlankKey(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx := context.Background()

	cache.Set(ctx, "   ", suggestionFixture("Paris"))

	if _, ok := cache.Get(ctx, ""); ok {
		t.Fatal("expected miss for blank key")
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	cache.Set(ctx, "Lyon", suggestionFixture("Lyon"))

	got, ok := cache.Get(ctx, "lyon")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].City != "Lyon" {
		t.Fatalf("unexpected cached value: %+v", got)
	}
}

func TestRedisCacheExpiresEntries(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	cache.Set(ctx, "lyon", suggestionFixture("Lyon"))
	server.FastForward(61 * time.Minute)

	if _, ok := cache.Get(ctx, "lyon"); ok {
		t.Fatal("expected miss after TTL")
	}
}

func TestRedisCacheTreatsFailureAsMiss(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	cache.Set(ctx, "lyon", suggestionFixture("Lyon"))
	server.Close()

	if _, ok := cache.Get(ctx, "lyon"); ok {
		t.Fatal("expected miss when redis is down")
	}
}
