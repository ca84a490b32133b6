package domain

import (
	"context"
	"errors"
	"time"

	"github.com/wechest/backend/internal/model"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/dateutil"
	"github.com/wechest/backend/pkg/errorx"
	"github.com/wechest/backend/pkg/ethutil"
	"github.com/wechest/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PlayerDomain interface {
	Get(context.Context, *model.GetPlayerRequest) (*model.GetPlayerResponse, error)
	UpdateScore(context.Context, *model.UpdateScoreRequest) (*model.UpdateScoreResponse, error)
	GetGameStatus(context.Context, *model.GetGameStatusRequest) (*model.GetGameStatusResponse, error)
	GetDate(context.Context, *model.GetDateRequest) (*model.GetDateResponse, error)
}

type playerDomain struct {
	playerRepo     repository.PlayerRepository
	chestClaimRepo repository.ChestClaimRepository
}

func NewPlayerDomain(
	playerRepo repository.PlayerRepository,
	chestClaimRepo repository.ChestClaimRepository,
) PlayerDomain {
	return &playerDomain{playerRepo: playerRepo, chestClaimRepo: chestClaimRepo}
}

func (d *playerDomain) Get(
	ctx context.Context, req *model.GetPlayerRequest,
) (*model.GetPlayerResponse, error) {
	if !ethutil.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address")
	}

	player, err := d.playerRepo.GetByAddress(ctx, ethutil.NormalizeAddress(req.Address))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Player not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPlayerResponse{Success: true, Player: convertPlayer(player)}, nil
}

func (d *playerDomain) UpdateScore(
	ctx context.Context, req *model.UpdateScoreRequest,
) (*model.UpdateScoreResponse, error) {
	if !ethutil.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address")
	}

	if req.Score == 0 {
		return nil, errorx.New(errorx.BadRequest, "Score must be positive")
	}

	address := ethutil.NormalizeAddress(req.Address)
	if err := d.playerRepo.AddScore(ctx, address, req.Score); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Player not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot add score: %v", err)
		return nil, errorx.Unknown
	}

	player, err := d.playerRepo.GetByAddress(ctx, address)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get player after score update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateScoreResponse{Success: true, Player: convertPlayer(player)}, nil
}

func (d *playerDomain) GetGameStatus(
	ctx context.Context, req *model.GetGameStatusRequest,
) (*model.GetGameStatusResponse, error) {
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
			return &model.GetGameStatusResponse{Success: true, HasPlayedToday: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get chest claim: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetGameStatusResponse{
		Success:        true,
		HasPlayedToday: true,
		Claim:          convertChestClaim(claim),
	}, nil
}

func (d *playerDomain) GetDate(
	ctx context.Context, req *model.GetDateRequest,
) (*model.GetDateResponse, error) {
	now := time.Now().UTC()
	return &model.GetDateResponse{
		Success:   true,
		Ymd:       dateutil.Ymd(now),
		Timestamp: now.Unix(),
		Timezone:  "UTC",
	}, nil
}
