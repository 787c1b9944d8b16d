package credstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

const (
	credentialKey  = "intake:credential"
	defaultTimeout = 5 * time.Second
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// ConnectRedis initialises a Redis client and validates connectivity with a
// ping. A default timeout is applied when none is provided.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Redis stores the token under a well-known key. Intended for shared
// workstation deployments where the session should not live on local disk.
type Redis struct {
	client *redis.Client
}

// NewRedis returns a store wrapping the given client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Set replaces the stored token.
func (r *Redis) Set(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, credentialKey, token, 0).Err(); err != nil {
		return fmt.Errorf("credstore: redis set: %w", err)
	}
	return nil
}

// Get returns the stored token, or domain.ErrNoCredential when none is held.
func (r *Redis) Get(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, credentialKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNoCredential
		}
		return "", fmt.Errorf("credstore: redis get: %w", err)
	}
	if val == "" {
		return "", domain.ErrNoCredential
	}
	return val, nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, credentialKey).Err(); err != nil {
		return fmt.Errorf("credstore: redis del: %w", err)
	}
	return nil
}
