package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/PrismCRM/internal/config"
	"github.com/m04kA/PrismCRM/internal/domain"
)

const keyPrefix = "session:"

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

type redisSession struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RedisStore хранит сессии в Redis с TTL на ключе
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создает хранилище сессий в Redis
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save сохраняет сессию до ExpiresAt
func (s *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%w: session already expired", ErrStorage)
	}

	data, err := json.Marshal(redisSession{
		Username:  session.User.Username,
		Role:      session.User.Role,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal session: %v", ErrStorage, err)
	}

	if err := s.client.Set(ctx, keyPrefix+session.Token, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set session: %v", ErrStorage, err)
	}
	return nil
}

// Get возвращает сессию по токену
func (s *RedisStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get session: %v", ErrStorage, err)
	}

	var stored redisSession
	if err := json.Unmarshal(val, &stored); err != nil {
		return nil, fmt.Errorf("%w: unmarshal session: %v", ErrStorage, err)
	}

	return &domain.Session{
		Token:     token,
		User:      domain.User{Username: stored.Username, Role: stored.Role},
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// Delete удаляет сессию, отсутствие ключа не ошибка
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%w: delete session: %v", ErrStorage, err)
	}
	return nil
}

// Ping проверяет доступность Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
