package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wechest/backend/pkg/errorx"
	"github.com/wechest/backend/pkg/router"
	"github.com/wechest/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		elapsed := time.Since(xcontext.StartTime(ctx)).Round(time.Millisecond)
		info := fmt.Sprintf("%s | %s | %s", req.Method, req.URL.Path, elapsed)

		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
