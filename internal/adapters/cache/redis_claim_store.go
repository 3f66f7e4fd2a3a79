package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClaimStore extends the in-flight guard across horizontally scaled
// instances. SET NX is the atomic check-and-insert; the TTL bounds how long a
// crashed leader can hold a reference hostage.
type RedisClaimStore struct {
	client *redis.Client
}

func NewRedisClaimStore(client *redis.Client) *RedisClaimStore {
	return &RedisClaimStore{client: client}
}

func (s *RedisClaimStore) Claim(ctx context.Context, reference string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.client.SetNX(ctx, "onboarding:inflight:"+reference, "1", ttl).Result()
}

func (s *RedisClaimStore) Release(ctx context.Context, reference string) error {
	return s.client.Del(ctx, "onboarding:inflight:"+reference).Err()
}
