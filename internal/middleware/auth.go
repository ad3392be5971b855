package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/router"
	"github.com/pointpass/backend/pkg/xcontext"
)

// WithAuthentication resolves the bearer token into a request user id. It
// lets anonymous requests through, Authenticate rejects them.
func WithAuthentication() router.MiddlewareFunc {
	return func(ctx context.Context, r *http.Request) (context.Context, error) {
		token := bearerToken(r)
		if token == "" {
			return ctx, nil
		}

		accessToken, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return ctx, errorx.New(errorx.Unauthenticated, "Invalid or expired token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context, r *http.Request) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}

	return strings.TrimPrefix(auth, "Bearer ")
}
