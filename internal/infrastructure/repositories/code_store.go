package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/communitysvc/domain"
)

// RedisCodeStore implements domain.CodeStore on Redis. TTL expiry is
// delegated to Redis, so a lapsed code simply stops existing.
type RedisCodeStore struct {
	client *redis.Client
	prefix string
}

// NewRedisCodeStore creates a new Redis-backed code store.
func NewRedisCodeStore(client *redis.Client) domain.CodeStore {
	return &RedisCodeStore{client: client, prefix: "sms:"}
}

// Put implements domain.CodeStore. An existing value under the same key is
// overwritten, which is how a re-sent code invalidates its predecessor.
func (s *RedisCodeStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, value, ttl).Err()
}

// Get implements domain.CodeStore. A missing or expired key returns an
// empty string with no error; the caller treats both as a failed match.
func (s *RedisCodeStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Delete implements domain.CodeStore
func (s *RedisCodeStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
