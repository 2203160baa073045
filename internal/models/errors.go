package models

import "errors"

var (
	// ErrUpstreamUnavailable covers transport failures and non-2xx answers
	// from the ranking or item endpoints
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedResponse is returned when an upstream body does not have
	// the expected shape
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrCacheUnavailable is returned when a cache backend fails for a reason
	// other than a miss
	ErrCacheUnavailable = errors.New("cache unavailable")
)
