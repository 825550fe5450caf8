package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "moving:refresh:"

// RedisStore хранит refresh токены в Redis.
// В ключ попадает только sha256 токена, значение - логин владельца.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore создает хранилище поверх клиента go-redis
func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

// Save сохраняет токен на время ttl
func (s *RedisStore) Save(ctx context.Context, token, username string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, s.key(token), username, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set: %v", ErrStore, err)
	}
	return nil
}

// Lookup возвращает логин владельца токена
func (s *RedisStore) Lookup(ctx context.Context, token string) (string, error) {
	username, err := s.rdb.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Lookup - get: %v", ErrStore, err)
	}
	return username, nil
}

// Delete удаляет токен. Отсутствие токена ошибкой не считается.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del: %v", ErrStore, err)
	}
	return nil
}

// Ping проверяет доступность Redis (используется в /readyz)
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) key(token string) string {
	return s.prefix + hashToken(token)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
