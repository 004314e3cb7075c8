package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"bgg-probe/bgg"
	"bgg-probe/config"
	"bgg-probe/logger"
	"bgg-probe/services"
	"bgg-probe/web"
)

func main() {
	if err := newApp(config.Load(), os.Stdout).Run(os.Args); err != nil {
		logger.Fatalf("bgg-probe: %v", err)
	}
}

func newApp(cfg *config.Config, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "bgg-probe",
		Usage:     "look up a board game on BoardGameGeek and print its details",
		ArgsUsage: "[query]",
		Writer:    out,
		Action: func(c *cli.Context) error {
			query := cfg.SearchQuery
			if c.Args().Present() {
				query = c.Args().First()
			}
			runProbe(c.Context, cfg, query, out)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "expose search and detail lookups over HTTP",
				Action: func(c *cli.Context) error {
					return serve(cfg)
				},
			},
		},
	}
}

// runProbe is the single error boundary of a probe run: every failure ends
// up as one printed line and the process still exits normally.
func runProbe(ctx context.Context, cfg *config.Config, query string, out io.Writer) {
	probe := services.NewProbe(bgg.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
	}, out)

	if err := probe.Run(ctx, query); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}

func serve(cfg *config.Config) error {
	client := bgg.NewClientWithConfig(bgg.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
	})
	server := web.NewServer(cfg, client)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()
	logger.Printf("Web server started on port %s (%s)", cfg.Port, cfg.Environment)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("web server: %w", err)
	case <-quit:
	}

	logger.Printf("Shutting down web server...")
	server.Stop()
	return nil
}
