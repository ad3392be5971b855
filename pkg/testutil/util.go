package testutil

import (
	"context"
	"time"

	"github.com/pointpass/backend/config"
	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/internal/model"
	"github.com/pointpass/backend/pkg/authenticator"
	"github.com/pointpass/backend/pkg/logger"
	"github.com/pointpass/backend/pkg/xcontext"

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
		ApiServer: config.ServerConfigs{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "secret",
				Expiration: time.Minute,
			},
			IdentityToken: config.TokenConfigs{
				Name:       "identity_token",
				Secret:     "identity_secret",
				Expiration: time.Minute,
			},
		},
		Twitter: config.TwitterConfigs{
			OfficialHandle: "abc",
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken))
	ctx = xcontext.WithIdentityEngine(ctx,
		authenticator.NewTokenEngine[model.IdentityToken](cfg.Auth.IdentityToken))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

// MockIdentityToken mints an identity token for the given login subject, as
// the login provider would after a social sign-in.
func MockIdentityToken(ctx context.Context, subject string) string {
	token, err := xcontext.IdentityEngine(ctx).Generate(subject, model.IdentityToken{ID: subject})
	if err != nil {
		panic(err)
	}

	return token
}
