package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/authscan/internal/cli"
	"github.com/vburojevic/authscan/internal/config"
)

const usage = `Usage: authscan <logfile> [--window=SECONDS] [--threshold=N] [--out=alerts.csv]

Reports WARN/ERROR counts, the top failed-login addresses and every address
with at least N failed logins inside a sliding window of SECONDS.

Run 'authscan --help' for all commands and flags.
`

func main() {
	if len(os.Args) == 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(cli.ExitUsage)
	}
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load configuration from files/environment
	cfg, configFile, cfgErr := config.LoadWithMeta()
	if cfgErr != nil {
		// Flags still parse against defaults so the error honors --format.
		cfg = config.Default()
	}

	var c cli.CLI
	parser, err := cli.NewParser(&c, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "authscan: %v\n", err)
		return cli.ExitUsage
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "authscan: error: %v\n", err)
		var perr *kong.ParseError
		if errors.As(err, &perr) && perr.Context != nil {
			_ = perr.Context.PrintUsage(true)
		}
		return cli.ExitUsage
	}

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	globals.ConfigFile = configFile
	defer func() { _ = globals.Logger.Sync() }()

	if cfgErr != nil {
		return cli.ExitCodeFor(cli.ConfigError(globals, cfgErr))
	}

	return cli.ExitCodeFor(ctx.Run(globals))
}
