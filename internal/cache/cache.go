// Package cache provides response cache backends for upstream API calls
package cache

import (
	"fmt"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
)

// Backend names accepted in [cache] backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// New builds the configured cache backend. It returns nil for BackendNone.
func New(cfg common.CacheConfig, logger *common.Logger) (interfaces.ResponseCache, error) {
	switch cfg.Backend {
	case BackendNone:
		logger.Info().Msg("Response cache disabled")
		return nil, nil
	case BackendRedis:
		c, err := NewRedisCache(cfg.RedisURL, logger)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		logger.Info().Msg("Response cache: redis")
		return c, nil
	case BackendMemory, "":
		logger.Info().Msg("Response cache: memory")
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
