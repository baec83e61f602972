package services

import (
	"strings"
	"testing"
	"time"
)

func TestResolvePublishedAtLifecycle(t *testing.T) {
	// Entering the live status stamps a fresh timestamp.
	first := ResolvePublishedAt("published", "published", nil)
	if first == nil {
		t.Fatal("expected timestamp when entering the live status")
	}

	// Staying live keeps the original timestamp.
	kept := ResolvePublishedAt("published", "published", first)
	if kept != first {
		t.Error("timestamp should be preserved while the status stays live")
	}

	// Leaving the live status clears it.
	cleared := ResolvePublishedAt("draft", "published", first)
	if cleared != nil {
		t.Error("timestamp should be cleared when leaving the live status")
	}

	// Re-entering stamps a new value, not the old one.
	time.Sleep(5 * time.Millisecond)
	second := ResolvePublishedAt("published", "published", nil)
	if second == nil {
		t.Fatal("expected timestamp when re-entering the live status")
	}
	if !second.After(*first) {
		t.Errorf("re-publish timestamp %v should be after the first %v", second, first)
	}
}

func TestResolvePublishedAtOtherStatuses(t *testing.T) {
	now := time.Now()
	if got := ResolvePublishedAt("archived", "published", &now); got != nil {
		t.Error("archived content should have no publish timestamp")
	}
	if got := ResolvePublishedAt("draft", "active", nil); got != nil {
		t.Error("draft content should have no publish timestamp")
	}
	if got := ResolvePublishedAt("active", "active", nil); got == nil {
		t.Error("careers entering active should be stamped")
	}
}

func TestEstimateReadingTime(t *testing.T) {
	cases := []struct {
		name  string
		words int
		want  int16
	}{
		{"empty", 0, 1},
		{"short floor", 50, 1},
		{"one minute", 200, 1},
		{"rounds up", 500, 3},
		{"rounds down", 420, 2},
		{"long form", 2000, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content := strings.TrimSpace(strings.Repeat("word ", tc.words))
			if got := EstimateReadingTime(content); got != tc.want {
				t.Errorf("EstimateReadingTime(%d words) = %d, want %d", tc.words, got, tc.want)
			}
		})
	}
}
