// Package ratelimit implements a fixed-window request limiter keyed by caller
// identity. State lives behind the Store interface: single-process deployments
// use the in-memory store, multi-instance deployments inject the redis store.
package ratelimit

import (
	"context"
	"time"
)

type Bucket struct {
	Window      time.Duration
	MaxRequests int
}

// Presets mirror the endpoint classes: strict guards state-mutating claim
// endpoints, moderate guards nonce issuance and score updates, lenient guards
// read endpoints.
var (
	Strict   = Bucket{Window: 5 * time.Minute, MaxRequests: 10}
	Moderate = Bucket{Window: 15 * time.Minute, MaxRequests: 50}
	Lenient  = Bucket{Window: 15 * time.Minute, MaxRequests: 100}
)

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type Store interface {
	// Hit records one request for key and reports whether it fits in the
	// bucket's window. When the window is full the request is not recorded.
	Hit(ctx context.Context, key string, bucket Bucket, now time.Time) (Result, error)

	// Sweep discards keys whose most recent request is older than maxIdle,
	// bounding memory. Stores with native expiry may treat this as a no-op.
	Sweep(ctx context.Context, maxIdle time.Duration) error
}
