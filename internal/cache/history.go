package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	historyKeyPrefix = "chat:history" // redis list of rendered messages per chat
	historyTTL       = 24 * time.Hour
)

// HistoryCache keeps the trailing window of rendered messages per chat in a
// redis list, so reconnect history reads don't have to hit Postgres. The
// cache is optional: with an empty address every method is a no-op and reads
// always fall through to the database.
type HistoryCache struct {
	rdb    *redis.Client
	window int
}

// NewHistoryCache connects to redis at addr. An empty addr returns a disabled
// cache.
func NewHistoryCache(addr string, window int) *HistoryCache {
	c := &HistoryCache{window: window}
	if addr == "" {
		return c
	}
	c.rdb = redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	return c
}

// Enabled reports whether a redis backend is configured.
func (c *HistoryCache) Enabled() bool {
	return c.rdb != nil
}

func (c *HistoryCache) key(chatID uint) string {
	return fmt.Sprintf("%s:%d", historyKeyPrefix, chatID)
}

// Append pushes one rendered message onto the chat's list and trims it to the
// trailing window, oldest-first.
func (c *HistoryCache) Append(ctx context.Context, chatID uint, rendered []byte) error {
	if c.rdb == nil {
		return nil
	}
	k := c.key(chatID)
	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, k, rendered)
	pipe.LTrim(ctx, k, int64(-c.window), -1)
	pipe.Expire(ctx, k, historyTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Recent returns the cached window for the chat, oldest-first. An empty slice
// means a miss; the caller falls back to the database.
func (c *HistoryCache) Recent(ctx context.Context, chatID uint) ([][]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	vals, err := c.rdb.LRange(ctx, c.key(chatID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		out = append(out, []byte(v))
	}
	return out, nil
}

// Replace overwrites the chat's list with the given window, oldest-first.
// Used to backfill after a database read.
func (c *HistoryCache) Replace(ctx context.Context, chatID uint, rendered [][]byte) error {
	if c.rdb == nil || len(rendered) == 0 {
		return nil
	}
	k := c.key(chatID)
	items := make([]interface{}, 0, len(rendered))
	for _, r := range rendered {
		items = append(items, r)
	}
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, k)
	pipe.RPush(ctx, k, items...)
	pipe.LTrim(ctx, k, int64(-c.window), -1)
	pipe.Expire(ctx, k, historyTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Close releases the redis connection.
func (c *HistoryCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
