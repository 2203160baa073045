package models

import "time"

// CacheLevel reports which cache level served a lookup
type CacheLevel string

const (
	CacheLevelL1   CacheLevel = "l1"
	CacheLevelL2   CacheLevel = "l2"
	CacheLevelMiss CacheLevel = "miss"
)

// CacheEntry is the envelope stored in every cache level
type CacheEntry struct {
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewCacheEntry builds an entry that expires ttl after now
func NewCacheEntry(data []byte, now time.Time, ttl time.Duration) CacheEntry {
	return CacheEntry{
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the entry is no longer visible at now.
// An entry is visible strictly before ExpiresAt.
func (e *CacheEntry) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// RemainingTTL returns how long the entry stays visible after now
func (e *CacheEntry) RemainingTTL(now time.Time) time.Duration {
	return e.ExpiresAt.Sub(now)
}

// LookupResult is the outcome of a level-aware cache lookup
type LookupResult struct {
	Entry *CacheEntry
	Level CacheLevel
	Found bool
}
