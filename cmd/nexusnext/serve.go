package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nexusnext/nexusnext/web"
	"github.com/nexusnext/nexusnext/web/waitlist"
)

// serveCmd runs the brand site.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the landing page and waitlist API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := waitlist.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open waitlist store: %w", err)
	}
	defer store.Close()

	mailer := waitlist.NewNopMailer()
	if cfg.Email.APIKey != "" {
		mailer = waitlist.NewMailer(cfg.Email.Endpoint, cfg.Email.APIKey, cfg.Email.Sender)
	} else {
		logger.Info("no email API key configured, confirmations disabled")
	}

	srv := web.NewServer(
		web.WithLogger(logger),
		web.WithPort(cfg.Server.Port),
		web.WithStore(store),
		web.WithMailer(mailer),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		return context.Cause(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
