package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/enthus-golang/lulu"
	"github.com/enthus-golang/lulu/internal/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize a new configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "lulu.toml",
					},
				},
				Action: runConfigInit,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration",
				Action: runConfigValidate,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	outputPath := c.String("output")

	if err := config.InitConfig(outputPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Created configuration file at %s\n", outputPath)
	return nil
}

func runConfigValidate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Fprintln(c.App.Writer, "Configuration is valid")
	return nil
}

func skuCommand() *cli.Command {
	return &cli.Command{
		Name:  "sku",
		Usage: "Print the product SKU of a letter size hardcover book",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "finish",
				Usage: "Cover finish, matte or glossy",
				Value: lulu.FinishMatte,
			},
		},
		Action: func(c *cli.Context) error {
			sku, err := lulu.PodPackageID(c.String("finish"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, sku)
			return nil
		},
	}
}
