package interfaces

import (
	"context"
	"time"

	"go-best-stories/internal/models"
)

//go:generate mockgen -package=mock -source=stories.go -destination=mock/stories.go

// StoryCache is the typed cache-aside store used by the aggregator
type StoryCache interface {
	Get(ctx context.Context, id models.StoryID) (*models.Story, bool, error)
	Put(ctx context.Context, id models.StoryID, story *models.Story, ttl time.Duration) error
}

// IdentifierSource returns the ranked story ids, best first
type IdentifierSource interface {
	FetchRankedIDs(ctx context.Context) ([]models.StoryID, error)
}

// DetailFetcher fetches a single story's detail record
type DetailFetcher interface {
	FetchStory(ctx context.Context, id models.StoryID) (*models.FetchedStory, error)
}

// StoriesProvider serves the best stories to the transport layer
type StoriesProvider interface {
	BestStories(ctx context.Context, count int) ([]models.Story, error)
}

// FailurePolicy decides whether an error aborts the request
type FailurePolicy interface {
	Classify(stage models.FailureStage, err error) models.FailureDecision
}
