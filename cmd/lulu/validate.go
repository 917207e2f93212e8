package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate interior and cover files",
		Subcommands: []*cli.Command{
			{
				Name:      "interior",
				Usage:     "Submit an interior file for validation",
				ArgsUsage: "URL",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pod-package-id", Usage: "Also check the file against `SKU`"},
					&cli.BoolFlag{Name: "wait", Usage: "Poll until validation has finished"},
					&cli.DurationFlag{Name: "interval", Usage: "Polling interval", Value: 5 * time.Second},
				},
				Action: runValidateInterior,
			},
			{
				Name:      "interior-status",
				Usage:     "Show the state of an interior validation",
				ArgsUsage: "ID",
				Action:    runInteriorStatus,
			},
			{
				Name:      "cover",
				Usage:     "Submit a cover file for validation",
				ArgsUsage: "URL",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pod-package-id", Usage: "Product `SKU` the cover is printed with", Required: true},
					&cli.IntFlag{Name: "pages", Usage: "Page count of the interior", Required: true},
					&cli.BoolFlag{Name: "wait", Usage: "Poll until normalization has finished"},
					&cli.DurationFlag{Name: "interval", Usage: "Polling interval", Value: 5 * time.Second},
				},
				Action: runValidateCover,
			},
			{
				Name:      "cover-status",
				Usage:     "Show the state of a cover validation",
				ArgsUsage: "ID",
				Action:    runCoverStatus,
			},
		},
	}
}

func validationIDArg(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one validation ID")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid validation ID %q: %w", c.Args().First(), err)
	}
	return id, nil
}

func runValidateInterior(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected the URL of the interior file")
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	v, err := e.client.ValidateInterior(c.Context, c.Args().First(), c.String("pod-package-id"))
	if err != nil {
		return err
	}

	for c.Bool("wait") && !v.Done() {
		e.logger.Info().Int64("id", v.ID).Str("status", v.Status).Msg("waiting for interior validation")
		select {
		case <-c.Context.Done():
			return c.Context.Err()
		case <-time.After(c.Duration("interval")):
		}
		if v, err = e.client.GetInteriorValidation(c.Context, v.ID); err != nil {
			return err
		}
	}

	return e.print(v)
}

func runInteriorStatus(c *cli.Context) error {
	id, err := validationIDArg(c)
	if err != nil {
		return err
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	v, err := e.client.GetInteriorValidation(c.Context, id)
	if err != nil {
		return err
	}
	return e.print(v)
}

func runValidateCover(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected the URL of the cover file")
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	v, err := e.client.ValidateCover(c.Context, c.Args().First(), c.String("pod-package-id"), c.Int("pages"))
	if err != nil {
		return err
	}

	for c.Bool("wait") && !v.Done() {
		e.logger.Info().Int64("id", v.ID).Str("status", v.Status).Msg("waiting for cover validation")
		select {
		case <-c.Context.Done():
			return c.Context.Err()
		case <-time.After(c.Duration("interval")):
		}
		if v, err = e.client.GetCoverValidation(c.Context, v.ID); err != nil {
			return err
		}
	}

	return e.print(v)
}

func runCoverStatus(c *cli.Context) error {
	id, err := validationIDArg(c)
	if err != nil {
		return err
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	v, err := e.client.GetCoverValidation(c.Context, id)
	if err != nil {
		return err
	}
	return e.print(v)
}
