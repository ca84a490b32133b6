package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/wechest/backend/pkg/xredis"
)

// redisStore keeps one sorted set per caller key, scored by hit time in unix
// nanoseconds. Keys expire on their own, so Sweep is a no-op.
type redisStore struct {
	client xredis.Client
}

func NewRedisStore(client xredis.Client) *redisStore {
	return &redisStore{client: client}
}

func redisKeyRateLimit(key string, bucket Bucket) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, int(bucket.Window.Seconds()))
}

func (s *redisStore) Hit(
	ctx context.Context, key string, bucket Bucket, now time.Time,
) (Result, error) {
	redisKey := redisKeyRateLimit(key, bucket)
	windowStart := now.Add(-bucket.Window)

	err := s.client.ZRemRangeByScore(ctx, redisKey,
		"-inf", strconv.FormatInt(windowStart.UnixNano(), 10))
	if err != nil {
		return Result{}, err
	}

	count, err := s.client.ZCard(ctx, redisKey)
	if err != nil {
		return Result{}, err
	}

	if count >= int64(bucket.MaxRequests) {
		return Result{
			Allowed:    false,
			Limit:      bucket.MaxRequests,
			Remaining:  0,
			ResetAt:    now.Add(bucket.Window),
			RetryAfter: bucket.Window,
		}, nil
	}

	err = s.client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	if err != nil {
		return Result{}, err
	}

	if err := s.client.Expire(ctx, redisKey, bucket.Window); err != nil {
		return Result{}, err
	}

	return Result{
		Allowed:   true,
		Limit:     bucket.MaxRequests,
		Remaining: bucket.MaxRequests - int(count) - 1,
		ResetAt:   now.Add(bucket.Window),
	}, nil
}

func (s *redisStore) Sweep(ctx context.Context, maxIdle time.Duration) error {
	return nil
}
