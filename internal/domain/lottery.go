package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/internal/model"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/pkg/errorx"
	"github.com/wechest/backend/pkg/ethutil"
	"github.com/wechest/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type LotteryDomain interface {
	Get(context.Context, *model.GetLotteryRequest) (*model.GetLotteryResponse, error)
	Claim(context.Context, *model.ClaimLotteryRequest) (*model.ClaimLotteryResponse, error)
}

type lotteryDomain struct {
	nonceRepo   repository.AuthNonceRepository
	lotteryRepo repository.LotteryRepository
	playerRepo  repository.PlayerRepository
}

func NewLotteryDomain(
	nonceRepo repository.AuthNonceRepository,
	lotteryRepo repository.LotteryRepository,
	playerRepo repository.PlayerRepository,
) LotteryDomain {
	return &lotteryDomain{
		nonceRepo:   nonceRepo,
		lotteryRepo: lotteryRepo,
		playerRepo:  playerRepo,
	}
}

func (d *lotteryDomain) Get(
	ctx context.Context, req *model.GetLotteryRequest,
) (*model.GetLotteryResponse, error) {
	if req.Address == "" {
		return d.getCatalog(ctx)
	}

	if !ethutil.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address")
	}

	address := ethutil.NormalizeAddress(req.Address)
	unlockTickets := xcontext.Configs(ctx).Lottery.UnlockTickets

	player, err := d.playerRepo.GetByAddress(ctx, address)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
			return nil, errorx.Unknown
		}

		// Unknown addresses just have not played yet.
		canPlay := false
		var zero uint
		return &model.GetLotteryResponse{
			Success:        true,
			CanPlayLottery: &canPlay,
			Tickets:        &zero,
			TotalClaims:    &zero,
			LotteryHistory: []model.LotteryClaim{},
		}, nil
	}

	history, err := d.lotteryRepo.GetClaimsByAddress(ctx, address, 50)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get lottery history: %v", err)
		return nil, errorx.Unknown
	}

	claims := make([]model.LotteryClaim, 0, len(history))
	for i := range history {
		claims = append(claims, *convertLotteryClaim(&history[i]))
	}

	canPlay := player.Tickets >= unlockTickets
	return &model.GetLotteryResponse{
		Success:        true,
		CanPlayLottery: &canPlay,
		Tickets:        &player.Tickets,
		TotalClaims:    &player.TotalClaims,
		LotteryHistory: claims,
	}, nil
}

func (d *lotteryDomain) getCatalog(ctx context.Context) (*model.GetLotteryResponse, error) {
	prizes, err := d.lotteryRepo.GetPrizes(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prizes: %v", err)
		return nil, errorx.Unknown
	}

	stats, err := d.lotteryRepo.Statistic(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get lottery statistic: %v", err)
		return nil, errorx.Unknown
	}

	catalog := make([]model.LotteryPrize, 0, len(prizes))
	for i := range prizes {
		catalog = append(catalog, convertLotteryPrize(&prizes[i]))
	}

	return &model.GetLotteryResponse{
		Success: true,
		Prizes:  catalog,
		Stats: &model.LotteryStats{
			TotalClaims:       stats.TotalClaims,
			TotalTicketsSpent: stats.TotalTicketsSpent,
			UniquePlayers:     stats.UniquePlayers,
		},
	}, nil
}

func (d *lotteryDomain) Claim(
	ctx context.Context, req *model.ClaimLotteryRequest,
) (*model.ClaimLotteryResponse, error) {
	if !ethutil.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address")
	}

	if req.PrizeID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing prize id")
	}

	if req.Nonce == "" || req.Signature == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing nonce or signature")
	}

	address := ethutil.NormalizeAddress(req.Address)

	nonce, err := d.nonceRepo.Consume(ctx, address, req.Nonce, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invalid or expired nonce")
		}

		xcontext.Logger(ctx).Errorf("Cannot consume nonce: %v", err)
		return nil, errorx.Unknown
	}

	purpose := ethutil.LotteryClaimPurpose(req.PrizeID)
	err = verifyChallengeSignature(ctx, address, purpose, req.Nonce, req.Signature, nonce.IssuedAt)
	if err != nil {
		return nil, err
	}

	player, err := d.playerRepo.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Player not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
		return nil, errorx.Unknown
	}

	unlockTickets := xcontext.Configs(ctx).Lottery.UnlockTickets
	if player.Tickets < unlockTickets {
		return nil, errorx.New(errorx.BadRequest,
			"Lottery unlocks at %d tickets", unlockTickets)
	}

	prize, err := d.lotteryRepo.GetPrizeByID(ctx, req.PrizeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Prize not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get prize: %v", err)
		return nil, errorx.Unknown
	}

	if !prize.Available {
		return nil, errorx.New(errorx.NotFound, "Prize not found")
	}

	if player.Tickets < prize.Cost {
		return nil, errorx.New(errorx.BadRequest, "Insufficient tickets")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	claim := &entity.LotteryClaim{
		Base:         entity.Base{ID: uuid.NewString()},
		Address:      address,
		PrizeID:      prize.ID,
		PrizeName:    prize.Name,
		TicketsSpent: prize.Cost,
		Signature:    req.Signature,
	}

	if err := d.lotteryRepo.CreateClaim(ctx, claim); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create lottery claim: %v", err)
		return nil, errorx.Unknown
	}

	// The debit re-checks the balance inside the update, so a concurrent
	// redemption cannot drive it negative.
	if err := d.playerRepo.SpendTickets(ctx, address, prize.Cost); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Insufficient tickets")
		}

		xcontext.Logger(ctx).Errorf("Cannot spend tickets: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	player, err = d.playerRepo.GetByAddress(ctx, address)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get player after redemption: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ClaimLotteryResponse{
		Success:          true,
		Message:          "Prize claimed successfully",
		Claim:            convertLotteryClaim(claim),
		RemainingTickets: player.Tickets,
	}, nil
}
