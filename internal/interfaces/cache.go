package interfaces

import (
	"context"
	"time"

	"go-best-stories/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache interface defines the contract for cache level implementations.
// A miss is reported as found == false with a nil error; err is reserved
// for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// LevelAwareCache is a Cache that also reports which level served a hit
type LevelAwareCache interface {
	Cache
	GetWithLevel(ctx context.Context, key string) (models.LookupResult, error)
}
