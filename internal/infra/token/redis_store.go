package token

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/ozgunabanoz/shopping-site-project/internal/repository"

	"github.com/redis/go-redis/v9"
)

const resetKeyPrefix = "pwreset:"

// RedisResetTokenStore はリセットトークンをTTL付きでRedisに置く。
type RedisResetTokenStore struct {
	client *redis.Client
}

func NewRedisResetTokenStore(client *redis.Client) *RedisResetTokenStore {
	return &RedisResetTokenStore{client: client}
}

func (s *RedisResetTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.client.Set(ctx, resetKeyPrefix+token, strconv.FormatInt(userID, 10), ttl).Err()
}

// Consume はトークンを取り出して同時に消す（1回限り）。
func (s *RedisResetTokenStore) Consume(ctx context.Context, token string) (int64, error) {
	val, err := s.client.GetDel(ctx, resetKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(val, 10, 64)
}
