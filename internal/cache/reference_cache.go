// Package cache keeps the small sector/status lookup tables in Redis so
// form rendering does not hit the store on every page load. All operations
// are best-effort: a cold or unreachable Redis falls through to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lippel/helpdesk-gateway/internal/config"
	"github.com/lippel/helpdesk-gateway/internal/domain"
)

const (
	sectorsKey  = "reference:setores"
	statusesKey = "reference:status"
)

// ReferenceCache wraps the go-redis client for reference data.
type ReferenceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewReferenceCache connects to Redis using the provided configuration.
func NewReferenceCache(cfg config.RedisConfig, logger *zap.Logger) *ReferenceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &ReferenceCache{client: client, ttl: cfg.ReferenceTTL(), logger: logger}
}

// Close closes the client.
func (c *ReferenceCache) Close() {
	if c != nil && c.client != nil {
		_ = c.client.Close()
	}
}

// Ping verifies Redis connectivity.
func (c *ReferenceCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("redis client not configured")
	}
	return c.client.Ping(ctx).Err()
}

// GetSectors returns the cached sector list and whether it was present.
func (c *ReferenceCache) GetSectors(ctx context.Context) ([]domain.Sector, bool) {
	var sectors []domain.Sector
	if !c.get(ctx, sectorsKey, &sectors) {
		return nil, false
	}
	return sectors, true
}

// SetSectors stores the sector list with the configured TTL.
func (c *ReferenceCache) SetSectors(ctx context.Context, sectors []domain.Sector) {
	c.set(ctx, sectorsKey, sectors)
}

// GetStatuses returns the cached status list and whether it was present.
func (c *ReferenceCache) GetStatuses(ctx context.Context) ([]domain.Status, bool) {
	var statuses []domain.Status
	if !c.get(ctx, statusesKey, &statuses) {
		return nil, false
	}
	return statuses, true
}

// SetStatuses stores the status list with the configured TTL.
func (c *ReferenceCache) SetStatuses(ctx context.Context, statuses []domain.Status) {
	c.set(ctx, statusesKey, statuses)
}

func (c *ReferenceCache) get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.Warn("corrupt cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *ReferenceCache) set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}
