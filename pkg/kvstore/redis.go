package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/retailcore/pos-register-backend/pkg/config"
)

const redisKeyNamespace = "pos"

// Redis stores each namespace as a single JSON string under pos:<namespace>,
// for registers that share a host-local redis instance.
type Redis struct {
	raw *redis.Client
}

// NewRedis bootstraps a redis-backed store and verifies connectivity.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func redisKey(namespace string) string {
	return fmt.Sprintf("%s:%s", redisKeyNamespace, namespace)
}

func (r *Redis) Read(ctx context.Context, namespace string) ([]byte, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	payload, err := r.raw.Get(ctx, redisKey(namespace)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNamespaceEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: read %s: %w", namespace, err)
	}
	return payload, nil
}

func (r *Redis) Write(ctx context.Context, namespace string, payload []byte) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	if err := r.raw.Set(ctx, redisKey(namespace), payload, 0).Err(); err != nil {
		return fmt.Errorf("kvstore: write %s: %w", namespace, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.raw.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.raw.Close()
}
