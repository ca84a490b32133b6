package repository

import (
	"context"

	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/pkg/xcontext"
)

type LotteryStatistic struct {
	TotalClaims       int64
	TotalTicketsSpent int64
	UniquePlayers     int64
}

type LotteryRepository interface {
	GetPrizes(ctx context.Context) ([]entity.LotteryPrize, error)
	GetPrizeByID(ctx context.Context, id string) (*entity.LotteryPrize, error)
	CreatePrize(ctx context.Context, prize *entity.LotteryPrize) error

	CreateClaim(ctx context.Context, claim *entity.LotteryClaim) error
	GetClaimsByAddress(ctx context.Context, address string, limit int) ([]entity.LotteryClaim, error)
	Statistic(ctx context.Context) (*LotteryStatistic, error)
}

type lotteryRepository struct{}

func NewLotteryRepository() *lotteryRepository {
	return &lotteryRepository{}
}

func (r *lotteryRepository) GetPrizes(ctx context.Context) ([]entity.LotteryPrize, error) {
	var result []entity.LotteryPrize
	err := xcontext.DB(ctx).
		Where("available=?", true).
		Order("cost ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lotteryRepository) GetPrizeByID(ctx context.Context, id string) (*entity.LotteryPrize, error) {
	var result entity.LotteryPrize
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *lotteryRepository) CreatePrize(ctx context.Context, prize *entity.LotteryPrize) error {
	return xcontext.DB(ctx).Create(prize).Error
}

func (r *lotteryRepository) CreateClaim(ctx context.Context, claim *entity.LotteryClaim) error {
	return xcontext.DB(ctx).Create(claim).Error
}

func (r *lotteryRepository) GetClaimsByAddress(
	ctx context.Context, address string, limit int,
) ([]entity.LotteryClaim, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var result []entity.LotteryClaim
	err := xcontext.DB(ctx).
		Where("address=?", address).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *lotteryRepository) Statistic(ctx context.Context) (*LotteryStatistic, error) {
	var result LotteryStatistic
	err := xcontext.DB(ctx).Model(&entity.LotteryClaim{}).
		Select(`COUNT(*) as total_claims,
			COALESCE(SUM(tickets_spent), 0) as total_tickets_spent,
			COUNT(DISTINCT address) as unique_players`).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
