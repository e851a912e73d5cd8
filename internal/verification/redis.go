package verification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps pending registrations in Redis so multiple instances can
// share them. Keys are given twice the logical expiry as TTL; the caller still
// checks Registration.Expires, which keeps the "expired code" answer available
// for a grace window before Redis drops the key.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
	}
}

func key(email string) string { return "verify:" + email }

func (s *RedisStore) Put(ctx context.Context, email string, reg Registration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	ttl := 2 * time.Until(reg.Expires)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.client.Set(ctx, key(email), data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (Registration, bool, error) {
	var reg Registration
	data, err := s.client.Get(ctx, key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return reg, false, nil
		}
		return reg, false, err
	}
	if err := json.Unmarshal(data, &reg); err != nil {
		return reg, false, err
	}
	return reg, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, key(email)).Err()
}
