package main

import (
	"github.com/urfave/cli/v2"
	"github.com/wechest/backend/internal/domain/cron"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewNonceSweepCronJob(s.nonceRepo))
	cronJobManager.Start(s.ctx)

	return nil
}
