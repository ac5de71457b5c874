package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
)

func TestDisabledCacheIsANoop(t *testing.T) {
	c := NewHistoryCache("", 20)
	if c.Enabled() {
		t.Fatal("cache with empty addr must be disabled")
	}

	ctx := context.Background()
	if err := c.Append(ctx, 1, []byte(`{"body":"hi"}`)); err != nil {
		t.Errorf("Append on disabled cache: %v", err)
	}
	items, err := c.Recent(ctx, 1)
	if err != nil || items != nil {
		t.Errorf("Recent on disabled cache = %v, %v; want nil, nil", items, err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on disabled cache: %v", err)
	}
}

// The redis-backed paths need a running server. Set TEST_REDIS_ADDR to run
// them, e.g. TEST_REDIS_ADDR=localhost:6379 go test ./internal/cache/
func testCache(t *testing.T, window int) *HistoryCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis cache tests")
	}
	c := NewHistoryCache(addr, window)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestAppendTrimsToWindow(t *testing.T) {
	c := testCache(t, 3)
	ctx := context.Background()
	chatID := uint(91001) // avoid clashing with other runs

	c.rdb.Del(ctx, c.key(chatID))

	for i := 1; i <= 5; i++ {
		if err := c.Append(ctx, chatID, []byte(fmt.Sprintf("m%d", i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	items, err := c.Recent(ctx, chatID)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("window = %d items, want 3", len(items))
	}
	// Oldest-first within the trailing window.
	for i, want := range []string{"m3", "m4", "m5"} {
		if string(items[i]) != want {
			t.Errorf("items[%d] = %q, want %q", i, items[i], want)
		}
	}
}

func TestReplaceOverwritesWindow(t *testing.T) {
	c := testCache(t, 3)
	ctx := context.Background()
	chatID := uint(91002)

	c.rdb.Del(ctx, c.key(chatID))

	if err := c.Append(ctx, chatID, []byte("stale")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := c.Replace(ctx, chatID, [][]byte{[]byte("a"), []byte("b")}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	items, err := c.Recent(ctx, chatID)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(items) != 2 || string(items[0]) != "a" || string(items[1]) != "b" {
		t.Errorf("items = %q", items)
	}
}
