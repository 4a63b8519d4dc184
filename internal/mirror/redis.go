package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openlms-dev/admin-console/pkg/config"
)

const redisKeyPrefix = "lms:mirror:"

// Redis stores mirror documents as JSON strings in Redis. Selected when
// MIRROR_BACKEND=redis, e.g. for shared lab machines where the console runs
// from several accounts.
type Redis struct {
	client *redis.Client
}

// NewRedis connects and pings the configured Redis instance.
func NewRedis(cfg config.RedisConfig) (*Redis, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Redis{client: client}, nil
}

// Save marshals v and overwrites the document for key.
func (s *Redis) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode mirror document: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("write mirror document: %w", err)
	}
	return nil
}

// Load reads the document for key into dst. Missing keys, Redis failures and
// unparsable content all yield ErrAbsent: the mirror is a fallback, never an
// error source.
func (s *Redis) Load(ctx context.Context, key string, dst any) error {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return ErrAbsent
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return ErrAbsent
	}
	return nil
}

// Delete removes the document for key.
func (s *Redis) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete mirror document: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *Redis) Close() error {
	return s.client.Close()
}
