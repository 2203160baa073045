package failure

import (
	"context"
	"errors"

	"go-best-stories/internal/models"
)

// Category is the metric label of a pipeline error
type Category string

const (
	// NoError indicates a successful operation
	NoError Category = "none"

	// UpstreamUnavailable covers transport failures and non-2xx answers
	UpstreamUnavailable Category = "upstream_unavailable"

	// MalformedResponse indicates an upstream body of the wrong shape
	MalformedResponse Category = "malformed_response"

	CacheUnavailable Category = "cache_unavailable"

	// Canceled indicates the request context ended before the work did
	Canceled Category = "canceled"

	UnknownError Category = "unknown"
)

// Categorize maps err onto a Category. Cancellation wins over the sentinel
// it arrived wrapped in.
func Categorize(err error) Category {
	switch {
	case err == nil:
		return NoError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Canceled
	case errors.Is(err, models.ErrCacheUnavailable):
		return CacheUnavailable
	case errors.Is(err, models.ErrMalformedResponse):
		return MalformedResponse
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return UpstreamUnavailable
	default:
		return UnknownError
	}
}
