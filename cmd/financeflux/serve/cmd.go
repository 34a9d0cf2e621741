package serve

import (
	"github.com/Gren-95/FinanceFlux/auth"
	authapi "github.com/Gren-95/FinanceFlux/auth/api"
	"github.com/Gren-95/FinanceFlux/auth/session"
	"github.com/Gren-95/FinanceFlux/internal/cmdflags"
	"github.com/Gren-95/FinanceFlux/internal/config"
	"github.com/Gren-95/FinanceFlux/internal/httpserver"
	"github.com/Gren-95/FinanceFlux/internal/logutil"
	"github.com/Gren-95/FinanceFlux/internal/webapp"
	"github.com/Gren-95/FinanceFlux/ledger"
	"github.com/urfave/cli/v2"
)

func Cmd(cfg *config.Config) *cli.Command {
	var (
		bind           string
		insecureCookie bool
	)
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the FinanceFlux web application",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to listen on (default from config, 127.0.0.1:8080)",
				EnvVars:     []string{cmdflags.EnvPrefix + "BIND"},
				Destination: &bind,
			},
			&cli.BoolFlag{
				Name:        "insecure-cookie",
				Usage:       "Send the session cookie over plain HTTP, only for local development",
				EnvVars:     []string{cmdflags.EnvPrefix + "INSECURE_COOKIE"},
				Destination: &insecureCookie,
			},
		},
		Action: func(c *cli.Context) error {
			if c.IsSet("bind") {
				cfg.Bind = bind
			}
			if c.IsSet("insecure-cookie") {
				cfg.InsecureCookie = insecureCookie
			}
			ctx := c.Context
			log := logutil.GetOrDefault(ctx)

			books, err := ledger.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer books.Close()

			sessions, err := session.InMemoryStore()
			if err != nil {
				return err
			}
			authn := auth.NewAuthenticator(books, auth.NewHasher(cfg.HasherParams()))
			realm := authapi.NewRealm(authn, sessions, cfg.InsecureCookie)
			if cfg.InsecureCookie {
				log.Warn().Msg("Session cookie will be sent over plain HTTP")
			}
			return httpserver.Serve(ctx, cfg.Bind, webapp.New(ctx, realm, books))
		},
	}
}
