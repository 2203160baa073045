package interfaces

import "go-best-stories/internal/models"

//go:generate mockgen -package=mock -source=keybuilder.go -destination=mock/keybuilder.go

// KeyBuilder maps story ids onto deterministic cache keys
type KeyBuilder interface {
	Build(id models.StoryID) string
}
