package ratelimit

import "context"

// RateLimitConfig bounds requests per client key over two sliding windows;
// a zero limit disables that window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// RateLimiter throttles the auth endpoints by client key.
type RateLimiter interface {
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
}
