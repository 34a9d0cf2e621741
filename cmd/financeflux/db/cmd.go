package db

import (
	"github.com/Gren-95/FinanceFlux/internal/config"
	"github.com/Gren-95/FinanceFlux/internal/logutil"
	"github.com/Gren-95/FinanceFlux/ledger"
	"github.com/urfave/cli/v2"
)

func Cmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Manage the ledger database",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create the database and its schema, existing data is kept",
				Action: func(c *cli.Context) error {
					books, err := ledger.Open(c.Context, cfg.Database)
					if err != nil {
						return err
					}
					log := logutil.GetOrDefault(c.Context)
					log.Info().Str("database", cfg.Database).Msg("Ledger ready")
					return books.Close()
				},
			},
		},
	}
}
