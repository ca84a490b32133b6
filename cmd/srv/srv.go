package main

import (
	"context"
	"net/http"

	"github.com/urfave/cli/v2"
	"github.com/wechest/backend/config"
	"github.com/wechest/backend/internal/domain"
	"github.com/wechest/backend/internal/repository"
	"github.com/wechest/backend/migration"
	"github.com/wechest/backend/pkg/logger"
	"github.com/wechest/backend/pkg/ratelimit"
	"github.com/wechest/backend/pkg/router"
	"github.com/wechest/backend/pkg/xcontext"
	"github.com/wechest/backend/pkg/xredis"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient  xredis.Client
	limiterStore ratelimit.Store

	nonceRepo      repository.AuthNonceRepository
	chestClaimRepo repository.ChestClaimRepository
	playerRepo     repository.PlayerRepository
	lotteryRepo    repository.LotteryRepository

	nonceDomain     domain.NonceDomain
	chestDomain     domain.ChestDomain
	lotteryDomain   domain.LotteryDomain
	playerDomain    domain.PlayerDomain
	statisticDomain domain.StatisticDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	s.configs = cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "dev" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                      s.configs.Database.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.db = db
	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

// loadRedisClient is optional wiring. Without redis the api falls back to the
// in-memory limiter store and database-only leaderboards.
func (s *srv) loadRedisClient() {
	if s.configs.Redis.Addr == "" {
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, running without it: %v", err)
		return
	}

	s.redisClient = client
}

func (s *srv) loadLimiterStore() {
	if s.redisClient != nil {
		s.limiterStore = ratelimit.NewRedisStore(s.redisClient)
		return
	}

	s.limiterStore = ratelimit.NewMemoryStore()
}

func (s *srv) loadRepos() {
	s.nonceRepo = repository.NewAuthNonceRepository()
	s.chestClaimRepo = repository.NewChestClaimRepository()
	s.playerRepo = repository.NewPlayerRepository()
	s.lotteryRepo = repository.NewLotteryRepository()
}

func (s *srv) loadDomains() {
	s.nonceDomain = domain.NewNonceDomain(s.nonceRepo)
	s.chestDomain = domain.NewChestDomain(s.nonceRepo, s.chestClaimRepo, s.playerRepo)
	s.lotteryDomain = domain.NewLotteryDomain(s.nonceRepo, s.lotteryRepo, s.playerRepo)
	s.playerDomain = domain.NewPlayerDomain(s.playerRepo, s.chestClaimRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.playerRepo, s.lotteryRepo, s.redisClient)
}
