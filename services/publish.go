package services

import (
	"math"
	"strings"
	"time"
)

// WordsPerMinute is the reading speed assumed for the reading-time
// estimate shown on blog posts and services.
const WordsPerMinute = 200

// ResolvePublishedAt implements the publish lifecycle timestamping.
// Entering the live status stamps the current time when no timestamp is
// set yet; leaving it clears the timestamp; re-entering stamps a fresh
// value. The returned pointer is the new published_at.
func ResolvePublishedAt(status, liveStatus string, current *time.Time) *time.Time {
	if status == liveStatus {
		if current != nil {
			return current
		}
		now := time.Now().UTC()
		return &now
	}
	return nil
}

// EstimateReadingTime returns the estimated minutes to read content at
// WordsPerMinute, with a floor of one minute for non-empty content.
func EstimateReadingTime(content string) int16 {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}
	minutes := int16(math.Round(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
