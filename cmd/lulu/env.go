package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/enthus-golang/lulu"
	"github.com/enthus-golang/lulu/internal/config"
)

func loadEnvFile(c *cli.Context) error {
	if _, err := config.LoadEnv(c.String("env-file")); err != nil {
		return err
	}
	return nil
}

// env bundles what every API command needs.
type env struct {
	cfg    *config.Config
	client *lulu.Client
	logger zerolog.Logger
	out    io.Writer
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.Bool("sandbox") {
		cfg.API.Sandbox = true
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Log.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func newEnv(c *cli.Context) (*env, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg, c.App.ErrWriter)

	opts := []lulu.Option{
		lulu.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		lulu.WithLogger(logger),
		lulu.WithUserAgent("lulu-cli/" + version),
	}
	if cfg.API.Sandbox {
		opts = append(opts, lulu.WithSandbox())
	}
	if cfg.API.BaseURL != "" {
		opts = append(opts, lulu.WithBaseURL(cfg.API.BaseURL))
	}
	if cfg.API.Rate > 0 {
		opts = append(opts, lulu.WithRateLimit(rate.Limit(cfg.API.Rate), cfg.API.Burst))
	}

	return &env{
		cfg:    cfg,
		client: lulu.New(cfg.API.Key, cfg.API.Secret, opts...),
		logger: logger,
		out:    c.App.Writer,
	}, nil
}

func (e *env) print(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func jobIDArg(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one print job ID")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid print job ID %q: %w", c.Args().First(), err)
	}
	return id, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", value)
	}
	return t, nil
}
