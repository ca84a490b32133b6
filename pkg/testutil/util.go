package testutil

import (
	"context"
	"time"

	"github.com/wechest/backend/config"
	"github.com/wechest/backend/migration"
	"github.com/wechest/backend/pkg/logger"
	"github.com/wechest/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		Chain: config.ChainConfigs{
			Domain:  "wechest.xyz",
			ChainID: 10143,
		},
		Nonce: config.NonceConfigs{
			Expiration: 5 * time.Minute,
		},
		Lottery: config.LotteryConfigs{
			UnlockTickets: 3,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}
