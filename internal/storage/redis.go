package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ev-marketplace/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the profile blob under one key, so several client
// processes on a machine can share a login.
type RedisStore struct {
	Client  *redis.Client
	key     string
	timeout time.Duration
}

// NewRedisClient connects and pings the server.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// NewRedisStore stores the profile under "evmarket:profile:<slot>".
func NewRedisStore(client *redis.Client, slot string) *RedisStore {
	return &RedisStore{
		Client:  client,
		key:     fmt.Sprintf("evmarket:profile:%s", slot),
		timeout: 3 * time.Second,
	}
}

func (s *RedisStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *RedisStore) Load() (*models.Profile, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.Client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile from redis: %w", err)
	}
	return decode(val)
}

func (s *RedisStore) Save(p *models.Profile) error {
	b, err := encode(p)
	if err != nil {
		return err
	}
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.Client.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("failed to set profile in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear() error {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.Client.Del(ctx, s.key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to delete profile from redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Token() (string, error) {
	return tokenOf(s.Load)
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	if s.Client != nil {
		return s.Client.Close()
	}
	return nil
}
