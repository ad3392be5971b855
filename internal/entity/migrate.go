package entity

import (
	"context"

	"github.com/pointpass/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&ActionLog{},
		&CompletedAction{},
	)
}
