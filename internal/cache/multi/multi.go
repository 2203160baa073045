package multi

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/metrics"
	"go-best-stories/internal/models"
)

// Ensure MultiCache implements interfaces.LevelAwareCache
var _ interfaces.LevelAwareCache = (*MultiCache)(nil)

// Level is one tier of the multi cache
type Level struct {
	Name  models.CacheLevel
	Cache interfaces.Cache
}

// MultiCache looks keys up through its levels in order, fastest first,
// and writes to every level
type MultiCache struct {
	levels            []Level
	enablePropagation bool
	clock             clock.Clock
	logger            *zap.Logger
}

// NewMultiCache creates a new MultiCache with the given levels
func NewMultiCache(levels []Level, enablePropagation bool, clk clock.Clock, logger *zap.Logger) *MultiCache {
	return &MultiCache{
		levels:            levels,
		enablePropagation: enablePropagation,
		clock:             clk,
		logger:            logger,
	}
}

// Get retrieves the entry from the first level that has it
func (mc *MultiCache) Get(ctx context.Context, key string) (*models.CacheEntry, bool, error) {
	result, err := mc.GetWithLevel(ctx, key)
	if err != nil {
		return nil, false, err
	}
	return result.Entry, result.Found, nil
}

// GetWithLevel retrieves the entry and reports the level that served it.
// A level error stops the lookup; levels behind a failing one are not consulted.
func (mc *MultiCache) GetWithLevel(ctx context.Context, key string) (models.LookupResult, error) {
	miss := models.LookupResult{Level: models.CacheLevelMiss}

	if len(mc.levels) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		return miss, nil
	}

	for i, level := range mc.levels {
		done := metrics.TimeCacheOperation("get", string(level.Name))
		entry, found, err := level.Cache.Get(ctx, key)
		done()
		if err != nil {
			return miss, err
		}
		if !found {
			continue
		}

		if i > 0 && mc.enablePropagation {
			mc.propagate(ctx, key, entry, mc.levels[:i])
		}
		return models.LookupResult{Entry: entry, Level: level.Name, Found: true}, nil
	}

	return miss, nil
}

// propagate copies an entry found in a slower level into the faster ones
// with whatever lifetime it has left
func (mc *MultiCache) propagate(ctx context.Context, key string, entry *models.CacheEntry, upper []Level) {
	remaining := entry.RemainingTTL(mc.clock.Now())
	if remaining <= 0 {
		return
	}

	for _, level := range upper {
		if err := level.Cache.Set(ctx, key, entry.Data, remaining); err != nil {
			mc.logger.Warn("Failed to propagate cache entry",
				zap.String("key", key),
				zap.String("level", string(level.Name)),
				zap.Error(err))
		}
	}
}

// Set stores value in all levels. Every level is attempted; the errors of
// all failing levels are joined.
func (mc *MultiCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if len(mc.levels) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return nil
	}

	var errs []error
	for _, level := range mc.levels {
		done := metrics.TimeCacheOperation("set", string(level.Name))
		err := level.Cache.Set(ctx, key, val, ttl)
		done()
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Delete removes entry from all levels
func (mc *MultiCache) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, level := range mc.levels {
		if err := level.Cache.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetCacheCount returns the number of levels in the multi-cache
func (mc *MultiCache) GetCacheCount() int {
	return len(mc.levels)
}
