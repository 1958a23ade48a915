package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"linkshield/internal/analysis"
	"linkshield/internal/api"
	"linkshield/internal/api/handler/v1handler"
	"linkshield/internal/config"
	"linkshield/internal/scanner"
	"linkshield/internal/worker"
	"linkshield/pkg/classifier"
	"linkshield/pkg/classifier/bertserve"
	"linkshield/pkg/intel"
	"linkshield/pkg/logger"
)

// newCollector builds the enrichment collector from configuration. A disabled
// collector still satisfies the interface and gathers nothing.
func newCollector(cfg *config.Config) intel.Collector {
	if !cfg.Intel.Enabled {
		return intel.Noop{}
	}

	return intel.NewCollector(intel.Options{
		PerCallTimeout:   cfg.Intel.PerCallTimeout,
		TotalBudget:      cfg.Intel.TotalBudget,
		VirusTotalAPIKey: cfg.Intel.VirusTotalAPIKey,
	})
}

// newClassifier builds the inference client, or nil when classification is
// disabled so every scan takes the fallback path.
func newClassifier(cfg *config.Config) classifier.Client {
	if !cfg.Classifier.Enabled {
		return nil
	}

	return bertserve.New(&http.Client{Timeout: cfg.Classifier.Timeout}, cfg.Classifier.BaseURL)
}

// newRules returns the scoring rule set with the fallback cutoffs taken from
// configuration.
func newRules(cfg *config.Config) analysis.Rules {
	rules := analysis.DefaultRules()
	rules.Fallback.SuspiciousAt = cfg.Scoring.FallbackSuspiciousAt
	rules.Fallback.MaliciousAt = cfg.Scoring.FallbackMaliciousAt

	return rules
}

func setupServer(ctx context.Context, cfg *config.Config, scn scanner.Scanner) func(ctx context.Context) {
	opts := api.NewOptions(cfg)
	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{Scanner: scn},
	}, opts)
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", opts.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			scn := scanner.New(newRules(cfg),
				newClassifier(cfg),
				newCollector(cfg),
				strg,
				scanner.NewOptions(cfg))

			riverClient, err := worker.Start(ctx, strg.Pool, strg)
			if err != nil {
				logger.Fatal(ctx, "could not start background workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, scn)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop background workers", zap.Error(err))
			}
		},
	}

	return cmd
}
