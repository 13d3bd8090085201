package cache

import (
	"context"
	"time"
)

// Cache is the JSON read-through cache sitting in front of the score read
// paths. Implementations must treat corrupt entries as misses.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Key builders, so every caller agrees on the layout.

func CandidateMetricsKey(candidateID string) string {
	return "metrics:candidate:" + candidateID
}

func MatchScoreKey(candidateID, postingID string) string {
	return "match:" + candidateID + ":" + postingID
}
