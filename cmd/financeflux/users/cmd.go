package users

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Gren-95/FinanceFlux/auth"
	"github.com/Gren-95/FinanceFlux/internal/cmdflags"
	"github.com/Gren-95/FinanceFlux/internal/config"
	"github.com/Gren-95/FinanceFlux/internal/logutil"
	"github.com/Gren-95/FinanceFlux/ledger"
	"github.com/urfave/cli/v2"
)

func Cmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage who can sign in",
		Subcommands: []*cli.Command{
			addCmd(cfg),
			unlockCmd(cfg),
		},
	}
}

func addCmd(cfg *config.Config) *cli.Command {
	var email string
	return &cli.Command{
		Name:  "add",
		Usage: "Create a user, the password is read from the first line of stdin",
		Flags: []cli.Flag{
			cmdflags.Email(&email),
		},
		Action: func(c *cli.Context) error {
			password, err := readPassword(c.App.Reader)
			if err != nil {
				return err
			}
			hash, err := auth.NewHasher(cfg.HasherParams()).Hash(password)
			if err != nil {
				return err
			}
			books, err := ledger.Open(c.Context, cfg.Database)
			if err != nil {
				return err
			}
			defer books.Close()
			u, err := books.CreateUser(c.Context, email, hash)
			if err != nil {
				return err
			}
			log := logutil.GetOrDefault(c.Context)
			log.Info().Int64("user.id", u.ID).Str("user.email", u.Email).Msg("User created")
			return nil
		},
	}
}

func unlockCmd(cfg *config.Config) *cli.Command {
	var email string
	return &cli.Command{
		Name:  "unlock",
		Usage: "Clear failed attempts and any lock of a user",
		Flags: []cli.Flag{
			cmdflags.Email(&email),
		},
		Action: func(c *cli.Context) error {
			books, err := ledger.Open(c.Context, cfg.Database)
			if err != nil {
				return err
			}
			defer books.Close()
			if err := books.Unlock(c.Context, email); err != nil {
				return err
			}
			log := logutil.GetOrDefault(c.Context)
			log.Info().Str("user.email", email).Msg("User unlocked")
			return nil
		},
	}
}

func readPassword(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("unable to read password, cause %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must be given on stdin")
	}
	return password, nil
}
