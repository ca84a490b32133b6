package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
	"github.com/wechest/backend/internal/domain/cron"
	"github.com/wechest/backend/internal/middleware"
	"github.com/wechest/backend/pkg/ratelimit"
	"github.com/wechest/backend/pkg/router"
	"golang.org/x/sync/errgroup"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRedisClient()
	s.loadLimiterStore()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	// The limiter store lives in this process, so its sweep has to as well.
	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewRateLimitSweepCronJob(s.limiterStore))
	defer cronJobManager.Cancel(s.ctx)

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.configs.ApiServer.Host, s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	var group errgroup.Group
	group.Go(func() error {
		cronJobManager.Start(s.ctx)
		return nil
	})
	group.Go(func() error {
		s.logger.Infof("Starting server on port %s", s.configs.ApiServer.Port)
		return s.server.ListenAndServe()
	})

	if err := group.Wait(); err != nil {
		return err
	}

	s.logger.Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// State-mutating claim endpoints.
	strictRouter := s.router.Branch()
	strictRouter.Before(middleware.RateLimit(s.limiterStore, ratelimit.Strict))
	{
		router.POST(strictRouter, "/claim", s.chestDomain.Claim)
		router.POST(strictRouter, "/lottery", s.lotteryDomain.Claim)
	}

	// Nonce issuance and score updates.
	moderateRouter := s.router.Branch()
	moderateRouter.Before(middleware.RateLimit(s.limiterStore, ratelimit.Moderate))
	{
		router.GET(moderateRouter, "/nonce", s.nonceDomain.Get)
		router.POST(moderateRouter, "/score", s.playerDomain.UpdateScore)
	}

	// Read endpoints.
	lenientRouter := s.router.Branch()
	lenientRouter.Before(middleware.RateLimit(s.limiterStore, ratelimit.Lenient))
	{
		router.GET(lenientRouter, "/claim", s.chestDomain.GetClaim)
		router.GET(lenientRouter, "/lottery", s.lotteryDomain.Get)
		router.GET(lenientRouter, "/player", s.playerDomain.Get)
		router.GET(lenientRouter, "/status", s.playerDomain.GetGameStatus)
		router.GET(lenientRouter, "/date", s.playerDomain.GetDate)
		router.GET(lenientRouter, "/leaderboard", s.statisticDomain.GetLeaderboard)
		router.GET(lenientRouter, "/stats", s.statisticDomain.GetStats)
	}
}
