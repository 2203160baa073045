package failure

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-best-stories/internal/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "nil", err: nil, want: NoError},
		{name: "upstream", err: fmt.Errorf("%w: status 503", models.ErrUpstreamUnavailable), want: UpstreamUnavailable},
		{name: "malformed", err: fmt.Errorf("%w: missing fields title", models.ErrMalformedResponse), want: MalformedResponse},
		{name: "cache", err: fmt.Errorf("%w: l2 get story:1", models.ErrCacheUnavailable), want: CacheUnavailable},
		{name: "canceled", err: context.Canceled, want: Canceled},
		{name: "deadline", err: context.DeadlineExceeded, want: Canceled},
		{
			name: "canceled inside upstream error",
			err:  fmt.Errorf("%w: request failed: %w", models.ErrUpstreamUnavailable, context.Canceled),
			want: Canceled,
		},
		{name: "unknown", err: errors.New("boom"), want: UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.err))
		})
	}
}
