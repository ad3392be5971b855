package main

import (
	"github.com/pointpass/backend/internal/entity"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()

	if err := entity.MigrateTable(server.newContext()); err != nil {
		return err
	}

	s.logger.Infof("Migrated the database successfully")
	return nil
}
