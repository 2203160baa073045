package models

// StoryID identifies one item in the upstream namespace
type StoryID int64

// Story is the detail record served to callers and kept in cache.
// JSON names follow the public response shape of the service.
type Story struct {
	Title        string `json:"title"`
	URL          string `json:"uri"`
	Author       string `json:"postedBy"`
	Time         int64  `json:"time"` // epoch seconds
	Score        int    `json:"score"`
	CommentCount int    `json:"commentCount"`
}

// FetchedStory is a story as returned by upstream together with the id
// upstream reported for it
type FetchedStory struct {
	ID    StoryID
	Story Story
}
