package cache

import (
	"testing"

	"go-best-stories/internal/models"
)

func TestKeyBuilder_Build(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		id      models.StoryID
		wantKey string
	}{
		{name: "default prefix", prefix: "", id: 8863, wantKey: "story:8863"},
		{name: "custom prefix", prefix: "hn", id: 42, wantKey: "hn:42"},
		{name: "zero id", prefix: "story", id: 0, wantKey: "story:0"},
		{name: "negative id", prefix: "story", id: -7, wantKey: "story:-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.prefix)
			if got := kb.Build(tt.id); got != tt.wantKey {
				t.Errorf("Build(%d) = %q, want %q", tt.id, got, tt.wantKey)
			}
		})
	}
}

func TestKeyBuilder_Deterministic(t *testing.T) {
	kb := NewKeyBuilder("story")

	first := kb.Build(123)
	for i := 0; i < 10; i++ {
		if got := kb.Build(123); got != first {
			t.Fatalf("Build() not deterministic: %q != %q", got, first)
		}
	}
	if kb.Build(123) == kb.Build(124) {
		t.Error("distinct ids must map to distinct keys")
	}
}
