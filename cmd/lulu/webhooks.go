package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/enthus-golang/lulu"
)

func webhooksCommand() *cli.Command {
	return &cli.Command{
		Name:  "webhooks",
		Usage: "Manage webhook subscriptions and receive deliveries",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List webhook subscriptions",
				Action: runWebhooksList,
			},
			{
				Name:      "create",
				Usage:     "Subscribe a URL to webhook topics",
				ArgsUsage: "URL",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "topic",
						Usage: "Topic to subscribe to, repeatable",
						Value: cli.NewStringSlice(lulu.TopicPrintJobStatusChanged),
					},
				},
				Action: runWebhooksCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a webhook subscription",
				ArgsUsage: "ID",
				Action:    runWebhooksDelete,
			},
			{
				Name:      "test",
				Usage:     "Ask the API to send a test delivery",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "topic", Value: lulu.TopicPrintJobStatusChanged},
				},
				Action: runWebhooksTest,
			},
			{
				Name:  "submissions",
				Usage: "List webhook delivery attempts",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Usage: "Page number"},
					&cli.IntFlag{Name: "page-size", Usage: "Number of submissions per page"},
					&cli.StringFlag{Name: "webhook", Usage: "Only submissions of webhook `ID`"},
				},
				Action: runWebhooksSubmissions,
			},
			{
				Name:   "listen",
				Usage:  "Serve an endpoint that receives and verifies webhook deliveries",
				Action: runWebhooksListen,
			},
		},
	}
}

func webhookIDArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one webhook ID")
	}
	return c.Args().First(), nil
}

func runWebhooksList(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}

	list, err := e.client.ListWebhooks(c.Context)
	if err != nil {
		return err
	}
	return e.print(list)
}

func runWebhooksCreate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected the destination URL")
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	webhook, err := e.client.CreateWebhook(c.Context, c.StringSlice("topic"), c.Args().First())
	if err != nil {
		return err
	}
	return e.print(webhook)
}

func runWebhooksDelete(c *cli.Context) error {
	id, err := webhookIDArg(c)
	if err != nil {
		return err
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	if err := e.client.DeleteWebhook(c.Context, id); err != nil {
		return err
	}
	e.logger.Info().Str("id", id).Msg("webhook deleted")
	return nil
}

func runWebhooksTest(c *cli.Context) error {
	id, err := webhookIDArg(c)
	if err != nil {
		return err
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	message, err := e.client.TestWebhook(c.Context, id, c.String("topic"))
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, message)
	return nil
}

func runWebhooksSubmissions(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}

	list, err := e.client.ListWebhookSubmissions(c.Context, &lulu.WebhookSubmissionsOptions{
		Page:      c.Int("page"),
		PageSize:  c.Int("page-size"),
		WebhookID: c.String("webhook"),
	})
	if err != nil {
		return err
	}
	return e.print(list)
}

// webhookHandler verifies a delivery and logs the print job it carries.
func webhookHandler(validator *lulu.WebhookValidator, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if err := validator.ValidateRequest(req); err != nil {
			logger.Warn().Err(err).Str("remote", c.RealIP()).Msg("rejected webhook delivery")
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid signature"})
		}

		event, err := lulu.ParseWebhookEvent(req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		if !event.IsPrintJobStatusChange() {
			logger.Info().Str("topic", event.Topic).Msg("ignoring webhook delivery")
			return c.NoContent(http.StatusNoContent)
		}

		job, err := event.PrintJob()
		if err != nil {
			logger.Error().Err(err).Msg("failed to translate webhook print job")
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}

		for _, item := range job.LineItems {
			logger.Info().
				Int64("job_id", job.ID).
				Int64("line_item_id", item.ID).
				Str("status", string(item.Status)).
				Strs("tracking_urls", item.TrackingURLs).
				Msg("print job status changed")
		}

		return c.JSON(http.StatusOK, job)
	}
}

func newWebhookServer(validator *lulu.WebhookValidator, logger zerolog.Logger, path string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.POST(path, webhookHandler(validator, logger))
	return e
}

func runWebhooksListen(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	secret := cfg.WebhookSecret()
	if secret == "" {
		return fmt.Errorf("webhook secret or api secret is required to verify deliveries")
	}

	logger := newLogger(cfg, c.App.ErrWriter)

	validator := lulu.NewWebhookValidator(secret)
	if cfg.Webhook.OldSecret != "" {
		validator.SetOldSecret(cfg.Webhook.OldSecret)
	}

	server := newWebhookServer(validator, logger, cfg.Webhook.Path)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Webhook.Addr).Str("path", cfg.Webhook.Path).Msg("listening for webhook deliveries")
		if err := server.Start(cfg.Webhook.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
