package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"veriname/internal/scoring"
)

// ErrCacheMiss is returned when no fresh entry exists for a source/phone pair.
var ErrCacheMiss = errors.New("directory cache miss")

// Cache stores candidate records per source and phone number so repeat
// verifications do not hammer the paid directory APIs.
type Cache interface {
	Get(ctx context.Context, source scoring.SourceID, phone string) (*scoring.CandidateRecord, error)
	Set(ctx context.Context, source scoring.SourceID, phone string, rec scoring.CandidateRecord) error
}

// RedisCache keeps directory lookups in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps a Redis client as a directory cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(source scoring.SourceID, phone string) string {
	return fmt.Sprintf("directory:%s:%s", source, phone)
}

func (c *RedisCache) Get(ctx context.Context, source scoring.SourceID, phone string) (*scoring.CandidateRecord, error) {
	data, err := c.client.Get(ctx, cacheKey(source, phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("directory cache get: %w", err)
	}

	var rec scoring.CandidateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("directory cache decode: %w", err)
	}
	return &rec, nil
}

func (c *RedisCache) Set(ctx context.Context, source scoring.SourceID, phone string, rec scoring.CandidateRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("directory cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(source, phone), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("directory cache set: %w", err)
	}
	return nil
}
