package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// NewIdempotencyStore builds the idempotency store for the configured Redis
// instance, falling back to the process-local store when Redis cannot be
// reached and allowFallback permits it. The fallback does not share state
// across instances, so duplicates can slip through in multi-node
// deployments.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger, allowFallback bool) (shared.IdempotencyStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := NewRedisIdempotencyStore(cfg)
	if err == nil {
		logger.Info("using redis idempotency store",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
		)
		return store, nil
	}

	if !allowFallback {
		return nil, fmt.Errorf("redis required for idempotency: %w", err)
	}

	logger.Warn("redis unavailable, using in-memory idempotency store", zap.Error(err))
	return NewInMemoryIdempotencyStore(), nil
}
