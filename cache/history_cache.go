package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// HistoryCache holds the encoded challenge history per user. Failures are
// logged and reported as misses; they never fail the request.
type HistoryCache interface {
	Get(ctx context.Context, userID string) ([]byte, bool)
	Set(ctx context.Context, userID string, payload []byte)
	Invalidate(ctx context.Context, userID string)
}

type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Noop) Set(context.Context, string, []byte)        {}
func (Noop) Invalidate(context.Context, string)         {}

type RedisHistoryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Entry
}

func NewRedisHistoryCache(url string, ttl time.Duration, log *logrus.Entry) (*RedisHistoryCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisHistoryCacheFromClient(client, ttl, log), nil
}

func NewRedisHistoryCacheFromClient(client *redis.Client, ttl time.Duration, log *logrus.Entry) *RedisHistoryCache {
	return &RedisHistoryCache{client: client, ttl: ttl, log: log}
}

func historyKey(userID string) string {
	return "history:" + userID
}

func (c *RedisHistoryCache) Get(ctx context.Context, userID string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, historyKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).WithField("user_id", userID).Warn("History cache read failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *RedisHistoryCache) Set(ctx context.Context, userID string, payload []byte) {
	if err := c.client.Set(ctx, historyKey(userID), payload, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("user_id", userID).Warn("History cache write failed")
	}
}

func (c *RedisHistoryCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, historyKey(userID)).Err(); err != nil {
		c.log.WithError(err).WithField("user_id", userID).Warn("History cache invalidation failed")
	}
}

func (c *RedisHistoryCache) Close() error {
	return c.client.Close()
}
