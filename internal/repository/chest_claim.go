package repository

import (
	"context"

	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/pkg/xcontext"
)

type ChestClaimRepository interface {
	// Create inserts the ledger row. The (address, ymd) unique index makes
	// the insert the arbiter of one-claim-per-day; duplicates surface as a
	// unique violation, check with IsUniqueViolation.
	Create(ctx context.Context, claim *entity.ChestClaim) error

	GetByAddressAndDay(ctx context.Context, address, ymd string) (*entity.ChestClaim, error)
	GetByAddress(ctx context.Context, address string, limit int) ([]entity.ChestClaim, error)
	Count(ctx context.Context) (int64, error)
	CountByDay(ctx context.Context, ymd string) (int64, error)
}

type chestClaimRepository struct{}

func NewChestClaimRepository() *chestClaimRepository {
	return &chestClaimRepository{}
}

func (r *chestClaimRepository) Create(ctx context.Context, claim *entity.ChestClaim) error {
	return xcontext.DB(ctx).Create(claim).Error
}

func (r *chestClaimRepository) GetByAddressAndDay(
	ctx context.Context, address, ymd string,
) (*entity.ChestClaim, error) {
	var result entity.ChestClaim
	err := xcontext.DB(ctx).Take(&result, "address=? AND ymd=?", address, ymd).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chestClaimRepository) GetByAddress(
	ctx context.Context, address string, limit int,
) ([]entity.ChestClaim, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var result []entity.ChestClaim
	err := xcontext.DB(ctx).
		Where("address=?", address).
		Order("ymd DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *chestClaimRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ChestClaim{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *chestClaimRepository) CountByDay(ctx context.Context, ymd string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ChestClaim{}).
		Where("ymd=?", ymd).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
