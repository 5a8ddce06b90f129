package cache

import (
	"context"
	"testing"

	"github.com/SeakMengs/FacultyCert/internal/config"
)

func TestDisabledCacheAlwaysMisses(t *testing.T) {
	c, err := NewRedisCache(config.RedisConfig{}, nil)
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	if c.Enabled() {
		t.Fatal("cache without an address is enabled")
	}

	ctx := context.Background()
	if err := c.Set(ctx, "k", map[string]string{"a": "b"}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var got map[string]string
	found, err := c.Get(ctx, "k", &got)
	if err != nil || found {
		t.Fatalf("Get() = %v, %v, want a miss", found, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	if c.Enabled() {
		t.Fatal("nil cache is enabled")
	}
	if found, err := c.Get(context.Background(), "k", &struct{}{}); found || err != nil {
		t.Fatalf("Get() = %v, %v", found, err)
	}
}
