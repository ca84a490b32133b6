package cron

import (
	"context"
	"time"

	"github.com/wechest/backend/pkg/ratelimit"
	"github.com/wechest/backend/pkg/xcontext"
)

// RateLimitSweepCronJob drops rate-limit buckets that have been idle for over
// an hour, so one-off visitors do not pin memory forever.
type RateLimitSweepCronJob struct {
	store ratelimit.Store
}

func NewRateLimitSweepCronJob(store ratelimit.Store) *RateLimitSweepCronJob {
	return &RateLimitSweepCronJob{store: store}
}

func (job *RateLimitSweepCronJob) Do(ctx context.Context) {
	if err := job.store.Sweep(ctx, time.Hour); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sweep rate limit store: %v", err)
	}
}

func (job *RateLimitSweepCronJob) RunNow() bool {
	return false
}

func (job *RateLimitSweepCronJob) Next() time.Time {
	return time.Now().Add(time.Hour)
}
