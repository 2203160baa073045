package l1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-best-stories/internal/config"
	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/metrics"
	"go-best-stories/internal/models"
	"go-best-stories/internal/scheduler"
)

const metricsInterval = 30 * time.Second

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache implements the L1 cache level on top of BigCache.
// BigCache only evicts by its life window; per-entry TTL is enforced lazily
// on read from the envelope's ExpiresAt.
type BigCache struct {
	cache            *bigcache.BigCache
	clock            clock.Clock
	logger           *zap.Logger
	metricsScheduler *scheduler.Scheduler
}

// NewBigCache creates a new BigCache instance
func NewBigCache(bigcacheCfg *config.BigCacheConfig, clk clock.Clock, logger *zap.Logger) (*BigCache, error) {
	lifeWindow := bigcacheCfg.GetLifeWindow()
	if lifeWindow <= 0 {
		lifeWindow = time.Hour
	}

	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.Shards = 64
	cfg.HardMaxCacheSize = bigcacheCfg.Size // Size in MB
	cfg.MaxEntriesInWindow = 10000
	cfg.MaxEntrySize = 1024 // story envelopes stay well under 1KB
	cfg.Verbose = false

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigcache: %w", err)
	}

	bc := &BigCache{
		cache:  cache,
		clock:  clk,
		logger: logger,
	}

	bc.startMetricsCollection()

	return bc, nil
}

// Get returns the entry stored under key if it has not expired
func (bc *BigCache) Get(_ context.Context, key string) (*models.CacheEntry, bool, error) {
	data, err := bc.cache.Get(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		metrics.RecordCacheError("l1", "read")
		return nil, false, fmt.Errorf("%w: l1 get %s: %w", models.ErrCacheUnavailable, key, err)
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		_ = bc.cache.Delete(key) // Remove corrupted entry
		return nil, false, nil
	}

	if entry.IsExpired(bc.clock.Now()) {
		_ = bc.cache.Delete(key)
		return nil, false, nil
	}

	return &entry, true, nil
}

// Set stores val under key for ttl. A non-positive ttl drops any previous
// entry so the key reads as a miss right away.
func (bc *BigCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return bc.Delete(ctx, key)
	}

	entry := models.NewCacheEntry(val, bc.clock.Now(), ttl)
	data, err := json.Marshal(entry)
	if err != nil {
		metrics.RecordCacheError("l1", "encode")
		return fmt.Errorf("%w: l1 encode %s: %w", models.ErrCacheUnavailable, key, err)
	}

	if err := bc.cache.Set(key, data); err != nil {
		bc.logger.Error("Failed to set cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "write")
		return fmt.Errorf("%w: l1 set %s: %w", models.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Delete removes entry from cache
func (bc *BigCache) Delete(_ context.Context, key string) error {
	err := bc.cache.Delete(key)
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		metrics.RecordCacheError("l1", "delete")
		return fmt.Errorf("%w: l1 delete %s: %w", models.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Close stops metrics collection and releases the cache
func (bc *BigCache) Close() error {
	bc.stopMetricsCollection()
	return bc.cache.Close()
}

// GetStats returns the allocated capacity in bytes and the number of entries
func (bc *BigCache) GetStats() (capacity, keys int64) {
	return int64(bc.cache.Capacity()), int64(bc.cache.Len())
}

func (bc *BigCache) startMetricsCollection() {
	bc.metricsScheduler = scheduler.New("l1_metrics", metricsInterval, bc.updateMetrics, bc.logger)
	bc.metricsScheduler.Start()
	bc.logger.Debug("Started L1 cache metrics collection")
}

func (bc *BigCache) stopMetricsCollection() {
	if bc.metricsScheduler != nil {
		bc.metricsScheduler.Stop()
		bc.logger.Debug("Stopped L1 cache metrics collection")
	}
}

func (bc *BigCache) updateMetrics() {
	capacity, keys := bc.GetStats()
	metrics.UpdateL1CacheCapacity(capacity)
	metrics.UpdateCacheKeys("l1", keys)
}
