package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/router"
	"github.com/pointpass/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context, r *http.Request, err error) {
		info := fmt.Sprintf("%s | %s", r.Method, r.URL.Path)
		if err != nil {
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
