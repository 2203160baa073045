package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-best-stories/internal/config"
	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/metrics"
	"go-best-stories/internal/models"
)

const (
	outcomeSuccess = "success"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Ensure StoriesService implements interfaces.StoriesProvider
var _ interfaces.StoriesProvider = (*StoriesService)(nil)

// StoriesService aggregates the best stories from the ranking service,
// serving what it can from cache and fetching the rest concurrently
type StoriesService struct {
	ids     interfaces.IdentifierSource
	fetcher interfaces.DetailFetcher
	cache   interfaces.StoryCache
	policy  interfaces.FailurePolicy
	cfg     config.StoriesConfig
	logger  *zap.Logger
}

// NewStoriesService creates a new stories service
func NewStoriesService(
	ids interfaces.IdentifierSource,
	fetcher interfaces.DetailFetcher,
	cache interfaces.StoryCache,
	policy interfaces.FailurePolicy,
	cfg config.StoriesConfig,
	logger *zap.Logger,
) *StoriesService {
	return &StoriesService{
		ids:     ids,
		fetcher: fetcher,
		cache:   cache,
		policy:  policy,
		cfg:     cfg,
		logger:  logger,
	}
}

// rankedStory keeps the upstream rank next to a story for optional sorting
type rankedStory struct {
	rank  int
	story models.Story
}

// accumulator collects stories from concurrent fetches
type accumulator struct {
	mu      sync.Mutex
	stories []rankedStory
}

func (a *accumulator) add(rank int, story models.Story) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stories = append(a.stories, rankedStory{rank: rank, story: story})
}

type miss struct {
	rank int
	id   models.StoryID
}

// BestStories returns up to count of the best stories. Cached stories come
// first in rank order followed by fetched ones in completion order, unless
// rank ordering is enabled.
func (s *StoriesService) BestStories(ctx context.Context, count int) ([]models.Story, error) {
	defer metrics.TimeStoriesRequest()()

	effective := min(count, s.cfg.MaxItems())
	if effective <= 0 {
		metrics.RecordStoriesRequest(outcomeEmpty, 0)
		return []models.Story{}, nil
	}

	stories, err := s.collect(ctx, effective)
	if err != nil {
		metrics.RecordStoriesRequest(outcomeError, 0)
		return nil, err
	}

	metrics.RecordStoriesRequest(outcomeSuccess, len(stories))
	return stories, nil
}

func (s *StoriesService) collect(ctx context.Context, limit int) ([]models.Story, error) {
	ids, err := s.ids.FetchRankedIDs(ctx)
	if err != nil {
		s.policy.Classify(models.StageRankedIDs, err)
		return nil, fmt.Errorf("failed to fetch ranked ids: %w", err)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	acc := &accumulator{stories: make([]rankedStory, 0, len(ids))}
	misses, err := s.partition(ctx, ids, acc)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Partitioned ranked ids",
		zap.Int("requested", limit),
		zap.Int("hits", len(ids)-len(misses)),
		zap.Int("misses", len(misses)))

	if err := s.fetchMisses(ctx, misses, acc); err != nil {
		return nil, err
	}

	if s.cfg.RankOrdered {
		sort.SliceStable(acc.stories, func(i, j int) bool {
			return acc.stories[i].rank < acc.stories[j].rank
		})
	}

	result := make([]models.Story, 0, len(acc.stories))
	for _, rs := range acc.stories {
		result = append(result, rs.story)
	}
	return result, nil
}

// partition adds cache hits to acc and returns the ids that must be fetched
func (s *StoriesService) partition(ctx context.Context, ids []models.StoryID, acc *accumulator) ([]miss, error) {
	var misses []miss
	for rank, id := range ids {
		story, found, err := s.cache.Get(ctx, id)
		if err != nil {
			if s.policy.Classify(models.StageCache, err) == models.DecisionAbort {
				return nil, fmt.Errorf("cache lookup for story %d: %w", id, err)
			}
			found = false
		}
		if found {
			acc.add(rank, *story)
			continue
		}
		misses = append(misses, miss{rank: rank, id: id})
	}
	return misses, nil
}

// fetchMisses fetches every miss concurrently. The first aborting error
// cancels the remaining fetches; Wait returns only after all of them exit.
func (s *StoriesService) fetchMisses(ctx context.Context, misses []miss, acc *accumulator) error {
	if len(misses) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.MaxConcurrency > 0 {
		g.SetLimit(s.cfg.MaxConcurrency)
	}

	ttl := s.cfg.CacheDuration()
	for _, m := range misses {
		m := m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.fetchOne(gctx, m, ttl, acc)
		})
	}

	return g.Wait()
}

func (s *StoriesService) fetchOne(ctx context.Context, m miss, ttl time.Duration, acc *accumulator) error {
	fetched, err := s.fetcher.FetchStory(ctx, m.id)
	if err != nil {
		if s.policy.Classify(models.StageDetail, err) == models.DecisionTolerate {
			return nil
		}
		return fmt.Errorf("failed to fetch story %d: %w", m.id, err)
	}

	if fetched.ID != m.id {
		s.logger.Warn("Upstream reported a different id than requested",
			zap.Int64("requested", int64(m.id)),
			zap.Int64("reported", int64(fetched.ID)))
		metrics.RecordUpstreamIDMismatch()
	}

	// Keyed by the requested id so the next lookup for it hits
	if err := s.cache.Put(ctx, m.id, &fetched.Story, ttl); err != nil {
		if s.policy.Classify(models.StageCache, err) == models.DecisionAbort {
			return fmt.Errorf("failed to cache story %d: %w", m.id, err)
		}
	}

	acc.add(m.rank, fetched.Story)
	return nil
}
