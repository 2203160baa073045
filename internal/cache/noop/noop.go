package noop

import (
	"context"
	"time"

	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache stands in for a disabled cache level
type NoOpCache struct{}

// NewNoOpCache creates a new no-operation cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns cache miss
func (n *NoOpCache) Get(_ context.Context, _ string) (*models.CacheEntry, bool, error) {
	return nil, false, nil
}

// Set does nothing
func (n *NoOpCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

// Delete does nothing
func (n *NoOpCache) Delete(_ context.Context, _ string) error {
	return nil
}
