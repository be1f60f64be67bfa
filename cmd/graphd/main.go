package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/eldtechnologies/graphmsg/internal/api"
	"github.com/eldtechnologies/graphmsg/internal/config"
	"github.com/eldtechnologies/graphmsg/internal/dispatch"
	"github.com/eldtechnologies/graphmsg/internal/graph"
	"github.com/eldtechnologies/graphmsg/internal/message"
	"github.com/eldtechnologies/graphmsg/internal/scenario"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	scenarioFile := flag.String("scenario", cfg.ScenarioFile, "Scenario YAML file (built-in Alice/Bob graph if empty)")
	flag.Parse()

	logger := cfg.Logger(os.Stderr)

	s := scenario.Default()
	if *scenarioFile != "" {
		s, err = scenario.Load(*scenarioFile)
		if err != nil {
			logger.Fatal().Err(err).Str("file", *scenarioFile).Msg("scenario load failed")
		}
	}

	logger.Info().
		Int("nodes", len(s.Nodes)).
		Int("messages", len(s.Messages)).
		Int("rsa_bits", cfg.RSAKeyBits).
		Msg("building graph")

	registry, msgs, err := scenario.Build(s, scenario.GenerateKeys(cfg.RSAKeyBits))
	if err != nil {
		logger.Fatal().Err(err).Msg("scenario build failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := dispatch.New(registry,
		dispatch.RequireEdge(cfg.RequireEdge),
		dispatch.WithLogger(logger),
	)
	failed := run(ctx, d, msgs, os.Stdout)
	logger.Info().Int("delivered", len(msgs)-failed).Int("failed", failed).Msg("scenario complete")

	if cfg.MetricsAddr == "" {
		return
	}
	serve(ctx, cfg, logger, registry)
}

// run delivers msgs in order and prints one line per message. It returns
// the number of failed deliveries.
func run(ctx context.Context, d *dispatch.Dispatcher, msgs []message.Message, out io.Writer) int {
	failed := 0
	for _, m := range msgs {
		outcome, err := d.DeliverAsync(ctx, m).Wait(ctx)
		if err != nil {
			failed++
			h := m.Envelope()
			fmt.Fprintf(out, "Failed %s message from %s to %s: %s: %v\n",
				m.Kind(), h.SenderID, h.ReceiverID, dispatch.ErrorKind(err), err)
			if ctx.Err() != nil {
				return failed
			}
			continue
		}
		fmt.Fprintln(out, outcome)
	}
	return failed
}

// serve exposes the ops endpoint until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger, registry *graph.Registry) {
	srv := &http.Server{
		Addr:         cfg.MetricsAddr,
		Handler:      api.NewRouter(logger, registry),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("addr", cfg.MetricsAddr).
			Str("env", cfg.Env).
			Msg("starting ops server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("ops server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down ops server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("ops server forced to shutdown")
	}

	logger.Info().Msg("ops server stopped")
}
