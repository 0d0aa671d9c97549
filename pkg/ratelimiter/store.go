package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state. Implementations refill the bucket for key, then
// take tokens when enough are left. A negative remaining count means the
// request was denied and nothing was taken.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// refill returns the token count after the intervals elapsed since last,
// and the new refill time.
func refill(tokens int, last, now time.Time, config Config) (int, time.Time) {
	elapsed := now.Sub(last)
	if elapsed < config.RefillInterval {
		return tokens, last
	}
	maxIntervals := int64(config.Capacity/config.RefillRate + 1)
	intervals := int(min(int64(elapsed/config.RefillInterval), maxIntervals))
	return min(tokens+intervals*config.RefillRate, config.Capacity), now
}
