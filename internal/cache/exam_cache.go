package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ExamCache keeps hot exam lookups (the timer endpoint is polled by every
// sitting student) out of the database. Misses fall through to Postgres;
// entries are dropped on exam update.
type ExamCache interface {
	GetDuration(ctx context.Context, examID uint) (int, bool)
	SetDuration(ctx context.Context, examID uint, minutes int) error
	Invalidate(ctx context.Context, examID uint) error
}

type redisExamCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisExamCache(client *redis.Client, ttl time.Duration) ExamCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisExamCache{client: client, ttl: ttl}
}

func durationKey(examID uint) string {
	return fmt.Sprintf("exam:%d:duration", examID)
}

func (c *redisExamCache) GetDuration(ctx context.Context, examID uint) (int, bool) {
	val, err := c.client.Get(ctx, durationKey(examID)).Result()
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return minutes, true
}

func (c *redisExamCache) SetDuration(ctx context.Context, examID uint, minutes int) error {
	return c.client.Set(ctx, durationKey(examID), strconv.Itoa(minutes), c.ttl).Err()
}

func (c *redisExamCache) Invalidate(ctx context.Context, examID uint) error {
	return c.client.Del(ctx, durationKey(examID)).Err()
}

// NoopExamCache is used when Redis is not configured and in tests.
type NoopExamCache struct{}

func (NoopExamCache) GetDuration(ctx context.Context, examID uint) (int, bool) { return 0, false }
func (NoopExamCache) SetDuration(ctx context.Context, examID uint, minutes int) error {
	return nil
}
func (NoopExamCache) Invalidate(ctx context.Context, examID uint) error { return nil }
