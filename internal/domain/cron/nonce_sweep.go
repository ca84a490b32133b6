package cron

import (
	"context"
	"time"

	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/xcontext"
)

// NonceSweepCronJob removes expired auth nonces. Issuing a nonce also sweeps
// opportunistically; this job covers deployments with little traffic.
type NonceSweepCronJob struct {
	nonceRepo repository.AuthNonceRepository
}

func NewNonceSweepCronJob(nonceRepo repository.AuthNonceRepository) *NonceSweepCronJob {
	return &NonceSweepCronJob{nonceRepo: nonceRepo}
}

func (job *NonceSweepCronJob) Do(ctx context.Context) {
	if err := job.nonceRepo.DeleteExpired(ctx, time.Now()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete expired nonces: %v", err)
	}
}

func (job *NonceSweepCronJob) RunNow() bool {
	return true
}

func (job *NonceSweepCronJob) Next() time.Time {
	return time.Now().Add(5 * time.Minute)
}
