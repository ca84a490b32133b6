package migration

import (
	"context"

	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/pkg/xcontext"
)

// migrate0000 creates the full schema.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.AuthNonce{},
		&entity.Player{},
		&entity.ChestClaim{},
		&entity.LotteryPrize{},
		&entity.LotteryClaim{},
	)
}
