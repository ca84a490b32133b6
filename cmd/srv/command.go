package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "wechest"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Serves the daily chest and lottery HTTP API.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start the cron service",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Runs periodic jobs such as the expired nonce sweep.`,
		},
	}

	s.app = app
}
