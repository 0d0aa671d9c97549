package ratelimiter

import "time"

// Result is the outcome of one rate limit check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left; negative when the request was denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long a denied caller should wait. It is 0 for
// allowed requests.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Config is the token bucket shape. Capacity zero disables limiting for
// callers that read it from the environment.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"10"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"6s"`
}

// Enabled reports whether c describes a limit.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

// ttl is how long an idle bucket takes to refill completely, plus one interval.
func (c Config) ttl() time.Duration {
	intervals := (c.Capacity+c.RefillRate-1)/c.RefillRate + 1
	return time.Duration(intervals) * c.RefillInterval
}
