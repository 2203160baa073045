package l2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-best-stories/internal/config"
	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/metrics"
	"go-best-stories/internal/models"
	"go-best-stories/internal/scheduler"
)

const poolMetricsInterval = 30 * time.Second

// Ensure KeyDBCache implements interfaces.Cache
var _ interfaces.Cache = (*KeyDBCache)(nil)

// KeyDBCache implements L2 cache using Redis/KeyDB
type KeyDBCache struct {
	client           interfaces.KeyDbClient
	config           *config.KeyDBConfig
	clock            clock.Clock
	logger           *zap.Logger
	metricsScheduler *scheduler.Scheduler
}

// NewKeyDBCache creates a new KeyDBCache instance with provided client
func NewKeyDBCache(cfg *config.KeyDBConfig, client interfaces.KeyDbClient, clk clock.Clock, logger *zap.Logger) *KeyDBCache {
	kc := &KeyDBCache{
		client: client,
		config: cfg,
		clock:  clk,
		logger: logger,
	}
	return kc
}

// Get retrieves a live entry from KeyDB. redis.Nil is a miss, any other
// client error means the level is unavailable.
func (kc *KeyDBCache) Get(ctx context.Context, key string) (*models.CacheEntry, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, kc.config.GetReadTimeout())
	defer cancel()

	data, err := kc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		kc.logger.Error("L2 cache get error", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "read")
		return nil, false, fmt.Errorf("%w: l2 get %s: %w", models.ErrCacheUnavailable, key, err)
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		kc.logger.Warn("Failed to unmarshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "decode")
		kc.client.Del(ctx, key)
		return nil, false, nil
	}

	if entry.IsExpired(kc.clock.Now()) {
		kc.client.Del(ctx, key)
		return nil, false, nil
	}

	return &entry, true, nil
}

// Set stores value in KeyDB with the server-side expiration matching ttl.
// Redis treats a zero expiration as "keep forever", so a non-positive ttl
// deletes the key instead.
func (kc *KeyDBCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return kc.Delete(ctx, key)
	}

	ctx, cancel := context.WithTimeout(ctx, kc.config.GetSendTimeout())
	defer cancel()

	entry := models.NewCacheEntry(val, kc.clock.Now(), ttl)
	data, err := json.Marshal(entry)
	if err != nil {
		metrics.RecordCacheError("l2", "encode")
		return fmt.Errorf("%w: l2 encode %s: %w", models.ErrCacheUnavailable, key, err)
	}

	if err := kc.client.Set(ctx, key, data, ttl).Err(); err != nil {
		kc.logger.Error("Failed to set L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "write")
		return fmt.Errorf("%w: l2 set %s: %w", models.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Delete removes entry from KeyDB cache
func (kc *KeyDBCache) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, kc.config.GetSendTimeout())
	defer cancel()

	if err := kc.client.Del(ctx, key).Err(); err != nil {
		kc.logger.Error("Failed to delete L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "delete")
		return fmt.Errorf("%w: l2 delete %s: %w", models.ErrCacheUnavailable, key, err)
	}
	return nil
}

// StartMetricsCollection periodically exports connection pool state
func (kc *KeyDBCache) StartMetricsCollection() {
	if kc.metricsScheduler != nil {
		return
	}
	kc.metricsScheduler = scheduler.New("keydb_pool_metrics", poolMetricsInterval, kc.updateMetrics, kc.logger)
	kc.metricsScheduler.Start()
}

func (kc *KeyDBCache) updateMetrics() {
	stats := kc.client.PoolStats()
	if stats == nil {
		return
	}
	metrics.UpdateKeyDBPool(stats.TotalConns, stats.IdleConns, stats.StaleConns)
}

// Close stops metrics collection and closes the KeyDB connection
func (kc *KeyDBCache) Close() error {
	if kc.metricsScheduler != nil {
		kc.metricsScheduler.Stop()
	}
	return kc.client.Close()
}
