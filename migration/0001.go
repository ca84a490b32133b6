package migration

import (
	"context"

	"github.com/google/uuid"
	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/pkg/xcontext"
)

// migrate0001 seeds the prize catalog.
func migrate0001(ctx context.Context) error {
	prizes := []entity.LotteryPrize{
		{
			Base:        entity.Base{ID: uuid.NewString()},
			Name:        "Small Prize",
			Description: "A small reward for lucky players",
			Cost:        1,
			Available:   true,
		},
		{
			Base:        entity.Base{ID: uuid.NewString()},
			Name:        "Medium Prize",
			Description: "A medium reward for dedicated players",
			Cost:        2,
			Available:   true,
		},
		{
			Base:        entity.Base{ID: uuid.NewString()},
			Name:        "Grand Prize",
			Description: "The grand reward for the most devoted players",
			Cost:        3,
			Available:   true,
		},
	}

	for i := range prizes {
		if err := xcontext.DB(ctx).Create(&prizes[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
