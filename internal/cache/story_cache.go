package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/metrics"
	"go-best-stories/internal/models"
)

// Ensure StoryCache implements interfaces.StoryCache
var _ interfaces.StoryCache = (*StoryCache)(nil)

// StoryCache stores story records in a tiered byte cache
type StoryCache struct {
	store      interfaces.LevelAwareCache
	keyBuilder interfaces.KeyBuilder
	logger     *zap.Logger
}

// NewStoryCache creates a typed story cache over store
func NewStoryCache(store interfaces.LevelAwareCache, keyBuilder interfaces.KeyBuilder, logger *zap.Logger) *StoryCache {
	return &StoryCache{
		store:      store,
		keyBuilder: keyBuilder,
		logger:     logger,
	}
}

// Get returns the cached story for id. A record that cannot be decoded is
// removed and reported as a miss.
func (c *StoryCache) Get(ctx context.Context, id models.StoryID) (*models.Story, bool, error) {
	key := c.keyBuilder.Build(id)

	result, err := c.store.GetWithLevel(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !result.Found || result.Entry == nil {
		metrics.RecordCacheMiss()
		return nil, false, nil
	}

	var story models.Story
	if err := json.Unmarshal(result.Entry.Data, &story); err != nil {
		c.logger.Warn("Dropping undecodable story from cache",
			zap.Int64("id", int64(id)),
			zap.String("level", string(result.Level)),
			zap.Error(err))
		metrics.RecordCacheError(string(result.Level), "decode")
		if delErr := c.store.Delete(ctx, key); delErr != nil {
			c.logger.Warn("Failed to delete undecodable story", zap.String("key", key), zap.Error(delErr))
		}
		metrics.RecordCacheMiss()
		return nil, false, nil
	}

	metrics.RecordCacheHit(string(result.Level))
	return &story, true, nil
}

// Put stores story under id for ttl, replacing any previous record
func (c *StoryCache) Put(ctx context.Context, id models.StoryID, story *models.Story, ttl time.Duration) error {
	if story == nil {
		return fmt.Errorf("nil story for id %d", id)
	}

	data, err := json.Marshal(story)
	if err != nil {
		return fmt.Errorf("failed to encode story %d: %w", id, err)
	}

	return c.store.Set(ctx, c.keyBuilder.Build(id), data, ttl)
}
