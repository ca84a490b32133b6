package migration

import (
	"context"
	"errors"
	"time"

	"github.com/wechest/backend/internal/entity"
	"github.com/wechest/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Ordered list of one-time migrations. The index is the version; append only,
// never reorder.
var migrations = []func(context.Context) error{
	migrate0000,
	migrate0001,
}

// Migrate applies every migration that has not been recorded in the
// migrations table yet. Runs at process startup, never on a request path.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	for version, migrate := range migrations {
		var applied entity.Migration
		err := xcontext.DB(ctx).Take(&applied, "version=?", version).Error
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		xcontext.Logger(ctx).Infof("Applying migration %04d", version)
		if err := migrate(ctx); err != nil {
			return err
		}

		record := entity.Migration{Version: version, AppliedAt: time.Now()}
		if err := xcontext.DB(ctx).Create(&record).Error; err != nil {
			return err
		}
	}

	return nil
}
