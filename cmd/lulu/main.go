package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	version = "0.1.0"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "lulu",
		Usage:   "Command line client for the Lulu Print API",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE` (default ./lulu.toml or ~/.lulu.toml)",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from `FILE`",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:  "sandbox",
				Usage: "Use the sandbox environment regardless of configuration",
			},
		},
		Before: loadEnvFile,
		Commands: []*cli.Command{
			jobsCommand(),
			validateCommand(),
			shippingCommand(),
			webhooksCommand(),
			skuCommand(),
			configCommand(),
		},
	}
}
