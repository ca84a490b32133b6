package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wechest/backend/pkg/errorx"
	"github.com/wechest/backend/pkg/ratelimit"
	"github.com/wechest/backend/pkg/router"
	"github.com/wechest/backend/pkg/xcontext"
)

type rateLimitedBody struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	RetryAfter int64  `json:"retryAfter"`
}

// RateLimit returns a before-middleware that enforces bucket per client IP.
// A denied request is answered here with a 429 body and the limiter headers;
// the router chain is aborted.
func RateLimit(store ratelimit.Store, bucket ratelimit.Bucket) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		key := clientIP(xcontext.HTTPRequest(ctx))

		result, err := store.Hit(ctx, key, bucket, time.Now())
		if err != nil {
			// Fail open. An unavailable limiter store must not take the
			// whole API down with it.
			xcontext.Logger(ctx).Errorf("Cannot hit rate limit store: %v", err)
			return ctx, nil
		}

		w := xcontext.HTTPWriter(ctx)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if result.Allowed {
			return ctx, nil
		}

		retryAfter := int64(result.RetryAfter.Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}

		w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		if err := json.NewEncoder(w).Encode(rateLimitedBody{
			Success:    false,
			Error:      "Too many requests, please try again later",
			RetryAfter: retryAfter,
		}); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write rate limit response: %v", err)
		}

		xcontext.SetError(ctx, errorx.New(errorx.TooManyRequests, "Rate limited"))
		return ctx, router.ErrAbort
	}
}

// clientIP prefers the first X-Forwarded-For hop, the address the reverse
// proxy saw, over RemoteAddr.
func clientIP(req *http.Request) string {
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, ok := strings.Cut(forwarded, ","); ok {
			return strings.TrimSpace(first)
		}

		return strings.TrimSpace(forwarded)
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}

	return host
}
