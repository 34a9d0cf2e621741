package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/Gren-95/FinanceFlux/cmd/financeflux/db"
	"github.com/Gren-95/FinanceFlux/cmd/financeflux/serve"
	"github.com/Gren-95/FinanceFlux/cmd/financeflux/users"
	"github.com/Gren-95/FinanceFlux/internal/cmdflags"
	"github.com/Gren-95/FinanceFlux/internal/config"
	"github.com/Gren-95/FinanceFlux/internal/logutil"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	var (
		cfg       config.Config
		cfgFile   string
		database  string
		logLevel  string
		logFormat string
	)
	app := &cli.App{
		Name:  "financeflux",
		Usage: "Invoices and customers for small businesses",
		Flags: []cli.Flag{
			cmdflags.Config(&cfgFile),
			cmdflags.Database(&database),
			cmdflags.LogLevel(&logLevel),
			cmdflags.LogFormat(&logFormat),
		},
		Before: func(c *cli.Context) error {
			loaded := config.Defaults()
			if cfgFile != "" {
				var err error
				loaded, err = config.LoadFile(c.Context, cfgFile)
				if err != nil {
					return err
				}
			}
			if c.IsSet("database") {
				loaded.Database = database
			}
			if c.IsSet("log-level") {
				loaded.Log.Level = logLevel
			}
			if c.IsSet("log-format") {
				loaded.Log.Format = logFormat
			}
			logger, err := logutil.New(os.Stderr, loaded.Log.Level, loaded.Log.Format)
			if err != nil {
				return err
			}
			log.Logger = logger
			c.Context = logutil.WithLogger(c.Context, logger)
			cfg = loaded
			return nil
		},
		Commands: []*cli.Command{
			serve.Cmd(&cfg),
			db.Cmd(&cfg),
			users.Cmd(&cfg),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
		cancel()
		os.Exit(1)
	}
}
