package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/config"
	"taskboard/internal/debug"
	"taskboard/internal/refresh"
	"taskboard/internal/web"

	"github.com/spf13/cobra"
)

var serveFlagBindings = []flagBinding{
	{"addr", config.KeyServeAddr},
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board as a web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides, err := collectOverrides(cmd, serveFlagBindings)
			if err != nil {
				return err
			}
			if err := config.ApplyOverrides(overrides); err != nil {
				return err
			}
			s, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, s)
		},
	}
	cmd.Flags().String("addr", config.DefaultServeAddr, "Listen address of the dashboard")
	return cmd
}

func runServe(ctx context.Context, s config.Settings) error {
	logger := debug.Logger()
	if !debug.Enabled() {
		logger = serverLogger()
	}
	svc := refresh.NewService(newClient(s), refresh.WithLogger(logger))
	return web.Serve(ctx, s.ServeAddr, svc, web.Options{
		Links:    newLinks(s),
		Header:   web.Header{Title: s.Title, Subtitle: s.Subtitle},
		Interval: refreshInterval(s),
	}, logger)
}
