package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-best-stories/internal/cache/l1"
	"go-best-stories/internal/cache/multi"
	"go-best-stories/internal/cache/noop"
	"go-best-stories/internal/config"
	"go-best-stories/internal/interfaces/mock"
	"go-best-stories/internal/models"
)

var sampleStory = models.Story{
	Title:        "A uBlock Origin update was rejected from the Chrome Web Store",
	URL:          "https://github.com/uBlockOrigin/uBlock-issues/issues/745",
	Author:       "ismaildonmez",
	Time:         1570887781,
	Score:        1716,
	CommentCount: 572,
}

func newTieredStoryCache(t *testing.T) (*StoryCache, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()

	bc, err := l1.NewBigCache(&config.BigCacheConfig{Size: 8, LifeWindow: 3600}, clk, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = bc.Close() })

	store := multi.NewMultiCache([]multi.Level{
		{Name: models.CacheLevelL1, Cache: bc},
		{Name: models.CacheLevelL2, Cache: noop.NewNoOpCache()},
	}, true, clk, zap.NewNop())

	return NewStoryCache(store, NewKeyBuilder("story"), zap.NewNop()), clk
}

func TestStoryCache_PutThenGet(t *testing.T) {
	sc, _ := newTieredStoryCache(t)
	ctx := context.Background()

	require.NoError(t, sc.Put(ctx, 21233041, &sampleStory, time.Minute))

	got, found, err := sc.Get(ctx, 21233041)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sampleStory, *got)
}

func TestStoryCache_FreshnessBoundary(t *testing.T) {
	sc, clk := newTieredStoryCache(t)
	ctx := context.Background()

	require.NoError(t, sc.Put(ctx, 1, &sampleStory, 60*time.Second))

	clk.Add(59 * time.Second)
	_, found, err := sc.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found, "entry must be visible before its TTL elapses")

	clk.Add(time.Second)
	_, found, err = sc.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found, "entry must be gone once its TTL elapses")
}

func TestStoryCache_NonPositiveTTLIsMiss(t *testing.T) {
	sc, _ := newTieredStoryCache(t)
	ctx := context.Background()

	require.NoError(t, sc.Put(ctx, 1, &sampleStory, time.Minute))
	require.NoError(t, sc.Put(ctx, 1, &sampleStory, 0))

	_, found, err := sc.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoryCache_OverwriteReplacesWholeRecord(t *testing.T) {
	sc, _ := newTieredStoryCache(t)
	ctx := context.Background()

	updated := sampleStory
	updated.Score = 2000
	updated.CommentCount = 600

	require.NoError(t, sc.Put(ctx, 1, &sampleStory, time.Minute))
	require.NoError(t, sc.Put(ctx, 1, &updated, time.Minute))

	got, found, err := sc.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, updated, *got)
}

func TestStoryCache_Get_ReportsLevelError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockLevelAwareCache(ctrl)
	sc := NewStoryCache(store, NewKeyBuilder("story"), zap.NewNop())

	store.EXPECT().GetWithLevel(gomock.Any(), "story:5").
		Return(models.LookupResult{Level: models.CacheLevelMiss}, models.ErrCacheUnavailable)

	got, found, err := sc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, models.ErrCacheUnavailable)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestStoryCache_Get_UndecodableRecordIsDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockLevelAwareCache(ctrl)
	sc := NewStoryCache(store, NewKeyBuilder("story"), zap.NewNop())

	store.EXPECT().GetWithLevel(gomock.Any(), "story:5").Return(models.LookupResult{
		Entry: &models.CacheEntry{Data: []byte("[1,2")},
		Level: models.CacheLevelL2,
		Found: true,
	}, nil)
	store.EXPECT().Delete(gomock.Any(), "story:5").Return(nil)

	got, found, err := sc.Get(context.Background(), 5)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestStoryCache_Put_EncodesStory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockLevelAwareCache(ctrl)
	sc := NewStoryCache(store, NewKeyBuilder("hn"), zap.NewNop())

	store.EXPECT().Set(gomock.Any(), "hn:9", gomock.Any(), 30*time.Second).
		DoAndReturn(func(_ context.Context, _ string, val []byte, _ time.Duration) error {
			var decoded models.Story
			require.NoError(t, json.Unmarshal(val, &decoded))
			assert.Equal(t, sampleStory, decoded)
			return nil
		})

	assert.NoError(t, sc.Put(context.Background(), 9, &sampleStory, 30*time.Second))
}

func TestStoryCache_Put_NilStory(t *testing.T) {
	sc, _ := newTieredStoryCache(t)
	assert.Error(t, sc.Put(context.Background(), 1, nil, time.Minute))
}
