package main

import (
	"net/http"

	"github.com/pointpass/backend/internal/middleware"
	"github.com/pointpass/backend/pkg/router"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()
	server.loadRedis(server.newContext())
	server.loadEndpoint()
	server.loadCatalog()
	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: cors.AllowAll().Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Public API
	{
		router.POST(s.router, "/register", s.userDomain.Register)
		router.GET(s.router, "/getReferral", s.userDomain.GetReferral)
		router.GET(s.router, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
		router.GET(s.router, "/getCutoff", s.statisticDomain.GetCutoff)
	}

	// These following APIs need authentication with an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.WithAuthentication())
	authRouter.Before(middleware.Authenticate())
	{
		router.POST(authRouter, "/claim", s.actionDomain.Claim)
		router.GET(authRouter, "/getMyActions", s.actionDomain.GetMyActions)
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/updateWallet", s.userDomain.UpdateWallet)
		router.GET(authRouter, "/getRank", s.statisticDomain.GetRank)
	}
}
