package xcontext

import (
	"context"
	"net/http"

	"github.com/pointpass/backend/config"
	"github.com/pointpass/backend/internal/model"
	"github.com/pointpass/backend/pkg/authenticator"
	"github.com/pointpass/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey            struct{}
	txKey            struct{}
	loggerKey        struct{}
	configsKey       struct{}
	requestUserIDKey  struct{}
	tokenEngineKey    struct{}
	identityEngineKey struct{}
	httpClientKey     struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. Inside a transaction started by
// WithDBTransaction, it returns the transaction instead.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}

	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		return db
	}

	panic("no database in context")
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, DB(ctx).Begin())
}

func WithCommitDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		tx.Commit()
	}
}

// WithRollbackDBTransaction rollbacks the current transaction. It is a no-op
// after the transaction was committed, so it is safe to defer right after
// WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		tx.Rollback()
	}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	if cfg, ok := ctx.Value(configsKey{}).(config.Configs); ok {
		return cfg
	}

	return config.Configs{}
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

// RequestUserID returns the authenticated user id of the current request, or
// an empty string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(requestUserIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	if engine, ok := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken]); ok {
		return engine
	}

	return authenticator.NewTokenEngine[model.AccessToken](Configs(ctx).Auth.AccessToken)
}

func WithIdentityEngine(ctx context.Context, engine authenticator.TokenEngine[model.IdentityToken]) context.Context {
	return context.WithValue(ctx, identityEngineKey{}, engine)
}

// IdentityEngine returns the verifier of login-provider identity tokens.
func IdentityEngine(ctx context.Context) authenticator.TokenEngine[model.IdentityToken] {
	if engine, ok := ctx.Value(identityEngineKey{}).(authenticator.TokenEngine[model.IdentityToken]); ok {
		return engine
	}

	return authenticator.NewTokenEngine[model.IdentityToken](Configs(ctx).Auth.IdentityToken)
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	if client, ok := ctx.Value(httpClientKey{}).(*http.Client); ok {
		return client
	}

	return http.DefaultClient
}
