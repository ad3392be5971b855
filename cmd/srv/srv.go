package main

import (
	"context"
	"net/http"

	"github.com/pointpass/backend/config"
	"github.com/pointpass/backend/internal/catalog"
	"github.com/pointpass/backend/internal/domain"
	"github.com/pointpass/backend/internal/domain/actionverify"
	"github.com/pointpass/backend/internal/domain/statistic"
	"github.com/pointpass/backend/internal/repository"
	"github.com/pointpass/backend/pkg/api/twitter"
	"github.com/pointpass/backend/pkg/logger"
	"github.com/pointpass/backend/pkg/router"
	"github.com/pointpass/backend/pkg/xcontext"
	"github.com/pointpass/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client

	twitterEndpoint twitter.IEndpoint
	actionCatalog   *catalog.Catalog
	verifier        *actionverify.Verifier

	userRepo            repository.UserRepository
	actionLogRepo       repository.ActionLogRepository
	completedActionRepo repository.CompletedActionRepository

	leaderboard statistic.Leaderboard

	userDomain      domain.UserDomain
	actionDomain    domain.ActionDomain
	statisticDomain domain.StatisticDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	s.configs = config.Load()
}

func (s *srv) loadLogger() {
	if s.configs.Env == "local" {
		s.logger = logger.NewLogger(logger.DEBUG)
	} else {
		s.logger = logger.NewLogger(logger.INFO)
	}
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRedis(ctx context.Context) {
	redisClient, err := xredis.NewClient(ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadEndpoint() {
	s.twitterEndpoint = twitter.New(s.configs.Twitter)
}

func (s *srv) loadCatalog() {
	if s.configs.Catalog.File == "" {
		s.actionCatalog = catalog.Default()
		return
	}

	actionCatalog, err := catalog.LoadFile(s.configs.Catalog.File)
	if err != nil {
		panic(err)
	}

	s.actionCatalog = actionCatalog
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.actionLogRepo = repository.NewActionLogRepository()
	s.completedActionRepo = repository.NewCompletedActionRepository()
}

func (s *srv) loadDomains() {
	s.verifier = actionverify.New(
		s.configs.Twitter.Capabilities(),
		s.configs.Twitter.OfficialHandle,
		s.twitterEndpoint,
	)

	s.leaderboard = statistic.New(s.userRepo, s.redisClient)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.leaderboard)
	s.actionDomain = domain.NewActionDomain(
		s.actionCatalog,
		s.userRepo,
		s.actionLogRepo,
		s.completedActionRepo,
		s.verifier,
		s.leaderboard,
	)
	s.statisticDomain = domain.NewStatisticDomain(s.userRepo, s.leaderboard)
}

func (s *srv) newContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	if s.db != nil {
		ctx = xcontext.WithDB(ctx, s.db)
	}

	return ctx
}
