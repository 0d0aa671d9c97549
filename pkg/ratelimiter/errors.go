package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidTokenCount = errors.New("invalid token count")
	ErrStoreUnavailable  = errors.New("store unavailable")
	// ErrRateLimited is passed to the deny handler when a key has no tokens left.
	ErrRateLimited = errors.New("rate limit exceeded")
)
