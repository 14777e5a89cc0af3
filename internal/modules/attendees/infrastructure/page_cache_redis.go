package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"passInWeb/internal/modules/attendees/application/port"
	"passInWeb/internal/modules/attendees/domain"
)

// RedisPageCache shares fetched pages between instances through Redis.
type RedisPageCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisPageCache namespaces keys per event so a purge never touches other events.
func NewRedisPageCache(client *redis.Client, eventID string, ttl time.Duration) *RedisPageCache {
	return &RedisPageCache{
		client: client,
		prefix: "passin:attendees:" + strings.TrimSpace(eventID) + ":",
		ttl:    ttl,
	}
}

func (c *RedisPageCache) Get(ctx context.Context, key string) (*domain.AttendeePage, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis page cache get failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	var page domain.AttendeePage
	if err := json.Unmarshal(raw, &page); err != nil {
		slog.Warn("redis page cache entry unreadable", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return &page, true
}

func (c *RedisPageCache) Set(ctx context.Context, key string, page *domain.AttendeePage) {
	if page == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		slog.Warn("redis page cache marshal failed", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		slog.Warn("redis page cache set failed", slog.String("key", key), slog.Any("error", err))
	}
}

// Purge deletes every key under the event prefix.
func (c *RedisPageCache) Purge(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("redis page cache scan failed", slog.Any("error", err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("redis page cache purge failed", slog.Int("keys", len(keys)), slog.Any("error", err))
	}
}

// Ping checks the connection at startup.
func (c *RedisPageCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

var _ port.PageCache = (*RedisPageCache)(nil)
