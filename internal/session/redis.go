package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

// RedisStore keeps one key per token with a TTL; Redis handles expiry.
type RedisStore struct {
	C   *redis.Client
	TTL time.Duration
}

func NewRedis(addr string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		C:   redis.NewClient(&redis.Options{Addr: addr}),
		TTL: ttl,
	}
}

func (s *RedisStore) Ping(ctx context.Context) error { return s.C.Ping(ctx).Err() }
func (s *RedisStore) Close() error                   { return s.C.Close() }

func (s *RedisStore) Create(ctx context.Context, userID string) (string, error) {
	tok, err := NewToken()
	if err != nil {
		return "", err
	}
	if err := s.C.Set(ctx, keyPrefix+tok, userID, s.TTL).Err(); err != nil {
		return "", err
	}
	return tok, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (string, error) {
	uid, err := s.C.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return uid, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	return s.C.Del(ctx, keyPrefix+token).Err()
}
