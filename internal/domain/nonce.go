package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/internal/model"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/crypto"
	"github.com/wechest/backend/pkg/errorx"
	"github.com/wechest/backend/pkg/ethutil"
	"github.com/wechest/backend/pkg/xcontext"
)

type NonceDomain interface {
	Get(context.Context, *model.GetNonceRequest) (*model.GetNonceResponse, error)
}

type nonceDomain struct {
	nonceRepo repository.AuthNonceRepository
}

func NewNonceDomain(nonceRepo repository.AuthNonceRepository) NonceDomain {
	return &nonceDomain{nonceRepo: nonceRepo}
}

func (d *nonceDomain) Get(
	ctx context.Context, req *model.GetNonceRequest,
) (*model.GetNonceResponse, error) {
	if !ethutil.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address")
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate nonce: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()

	// Expired rows are useless to everyone, sweep them while we are here. The
	// cron job covers quiet periods.
	if err := d.nonceRepo.DeleteExpired(ctx, now); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot delete expired nonces: %v", err)
	}

	cfg := xcontext.Configs(ctx)
	record := &entity.AuthNonce{
		ID:        uuid.NewString(),
		Address:   ethutil.NormalizeAddress(req.Address),
		Nonce:     nonce,
		IssuedAt:  now,
		ExpiresAt: now.Add(cfg.Nonce.Expiration),
	}

	if err := d.nonceRepo.Create(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create nonce: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetNonceResponse{
		Success:        true,
		Nonce:          nonce,
		Domain:         cfg.Chain.Domain,
		ChainID:        cfg.Chain.ChainID,
		IssuedAt:       record.IssuedAt.UTC().Format(time.RFC3339),
		ExpirationTime: record.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}
