package cmdflags

import (
	"github.com/urfave/cli/v2"
)

// EnvPrefix is prepended to the environment variable of every flag.
const EnvPrefix = "FINANCEFLUX_"

func Database(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "database",
		Aliases:     []string{"db", "d"},
		Usage:       "Directory holding the ledger database",
		EnvVars:     []string{EnvPrefix + "DATABASE"},
		Destination: out,
		Value:       *out,
	}
}

func Config(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to a Lua configuration file, explicit flags take precedence over it",
		EnvVars:     []string{EnvPrefix + "CONFIG"},
		Destination: out,
		Value:       *out,
	}
}

func LogLevel(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "log-level",
		Usage:       "One of trace, debug, info, warn, error",
		EnvVars:     []string{EnvPrefix + "LOG_LEVEL"},
		Destination: out,
		Value:       *out,
	}
}

func LogFormat(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "log-format",
		Usage:       "Either console or json",
		EnvVars:     []string{EnvPrefix + "LOG_FORMAT"},
		Destination: out,
		Value:       *out,
	}
}

func Email(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "email",
		Aliases:     []string{"e"},
		Usage:       "Email of the user",
		Required:    true,
		Destination: out,
	}
}
