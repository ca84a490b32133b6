package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/internal/model"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/dateutil"
	"github.com/wechest/backend/pkg/errorx"
	"github.com/wechest/backend/pkg/ethutil"
	"github.com/wechest/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	ClaimStatusClaimed        = "claimed"
	ClaimStatusAlreadyClaimed = "already_claimed"

	ticketsPerChest = 1
)

type ChestDomain interface {
	GetClaim(context.Context, *model.GetChestClaimRequest) (*model.GetChestClaimResponse, error)
	Claim(context.Context, *model.ClaimChestRequest) (*model.ClaimChestResponse, error)
}

type chestDomain struct {
	nonceRepo      repository.AuthNonceRepository
	chestClaimRepo repository.ChestClaimRepository
	playerRepo     repository.PlayerRepository
}

func NewChestDomain(
	nonceRepo repository.AuthNonceRepository,
	chestClaimRepo repository.ChestClaimRepository,
	playerRepo repository.PlayerRepository,
) ChestDomain {
	return &chestDomain{
		nonceRepo:      nonceRepo,
		chestClaimRepo: chestClaimRepo,
		playerRepo:     playerRepo,
	}
}

func (d *chestDomain) GetClaim(
	ctx context.Context, req *model.GetChestClaimRequest,
) (*model.GetChestClaimResponse, error) {
	if !ethutil.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address")
	}

	ymd := req.Ymd
	if ymd == "" {
		ymd = dateutil.CurrentYmd()
	} else if !dateutil.IsValidYmd(ymd) {
		return nil, errorx.New(errorx.BadRequest, "Invalid date")
	}

	address := ethutil.NormalizeAddress(req.Address)
	claim, err := d.chestClaimRepo.GetByAddressAndDay(ctx, address, ymd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetChestClaimResponse{Claimed: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get chest claim: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetChestClaimResponse{Claimed: true, Claim: convertChestClaim(claim)}, nil
}

func (d *chestDomain) Claim(
	ctx context.Context, req *model.ClaimChestRequest,
) (*model.ClaimChestResponse, error) {
	if !ethutil.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address")
	}

	if !dateutil.IsValidYmd(req.Ymd) {
		return nil, errorx.New(errorx.BadRequest, "Invalid date")
	}

	if req.Nonce == "" || req.Signature == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing nonce or signature")
	}

	// The server clock is the only clock. A claim for any other day is
	// rejected before it costs a nonce lookup.
	today := dateutil.CurrentYmd()
	if req.Ymd != today {
		return nil, errorx.New(errorx.BadRequest, "Claims are only accepted for %s", today)
	}

	address := ethutil.NormalizeAddress(req.Address)

	// Consume before verifying: a failed signature still burns the nonce.
	nonce, err := d.nonceRepo.Consume(ctx, address, req.Nonce, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invalid or expired nonce")
		}

		xcontext.Logger(ctx).Errorf("Cannot consume nonce: %v", err)
		return nil, errorx.Unknown
	}

	purpose := ethutil.ChestClaimPurpose(req.Ymd)
	err = verifyChallengeSignature(ctx, address, purpose, req.Nonce, req.Signature, nonce.IssuedAt)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	claim := &entity.ChestClaim{
		Base:           entity.Base{ID: uuid.NewString()},
		Address:        address,
		Ymd:            req.Ymd,
		Signature:      req.Signature,
		TicketsAwarded: ticketsPerChest,
	}

	if err := d.chestClaimRepo.Create(ctx, claim); err != nil {
		// The unique (address, ymd) index lost us the race or the player
		// claimed earlier today. Either way it is a benign outcome, not an
		// error.
		if repository.IsUniqueViolation(err) {
			ctx = xcontext.WithRollbackDBTransaction(ctx)
			return d.alreadyClaimed(ctx, address, req.Ymd)
		}

		xcontext.Logger(ctx).Errorf("Cannot create chest claim: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.playerRepo.ApplyChestClaim(ctx, address, req.Ymd); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot apply chest claim to player: %v", err)
			return nil, errorx.Unknown
		}

		player := &entity.Player{
			Base:           entity.Base{ID: uuid.NewString()},
			Address:        address,
			Tickets:        ticketsPerChest,
			TotalClaims:    1,
			FirstClaimDate: req.Ymd,
			LastClaimDate:  req.Ymd,
		}

		if err := d.playerRepo.Create(ctx, player); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create player: %v", err)
			return nil, errorx.Unknown
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	player, err := d.playerRepo.GetByAddress(ctx, address)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get player after claim: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ClaimChestResponse{
		Success: true,
		Status:  ClaimStatusClaimed,
		Tickets: player.Tickets,
		Claim:   convertChestClaim(claim),
	}, nil
}

func (d *chestDomain) alreadyClaimed(
	ctx context.Context, address, ymd string,
) (*model.ClaimChestResponse, error) {
	resp := &model.ClaimChestResponse{Success: false, Status: ClaimStatusAlreadyClaimed}

	if claim, err := d.chestClaimRepo.GetByAddressAndDay(ctx, address, ymd); err == nil {
		resp.Claim = convertChestClaim(claim)
	}

	if player, err := d.playerRepo.GetByAddress(ctx, address); err == nil {
		resp.Tickets = player.Tickets
	}

	return resp, nil
}
