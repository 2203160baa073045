package cache

import (
	"strconv"

	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/models"
)

const defaultKeyPrefix = "story"

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl builds keys of the form prefix:id
type KeyBuilderImpl struct {
	prefix string
}

// NewKeyBuilder creates a new KeyBuilder. An empty prefix falls back to "story".
func NewKeyBuilder(prefix string) *KeyBuilderImpl {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &KeyBuilderImpl{prefix: prefix}
}

// Build creates the cache key for a story id
func (kb *KeyBuilderImpl) Build(id models.StoryID) string {
	return kb.prefix + ":" + strconv.FormatInt(int64(id), 10)
}
