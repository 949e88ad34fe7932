package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Houeta/address-mapper/internal/geocoding"
	"github.com/Houeta/address-mapper/internal/metrics"
	"github.com/Houeta/address-mapper/internal/pipeline"
	"github.com/Houeta/address-mapper/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const bytesPerMB = 1 << 20

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI for uploading, geocoding and mapping address files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Shut down gracefully on Ctrl+C.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Create a separate registry so only this app's collectors are exposed.
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		appMetrics := metrics.NewMetrics(reg)

		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:     geocoding.ProviderType(cfg.ProviderType),
			APIKey:   cfg.APIKey,
			MinDelay: cfg.RateDelay,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create geocoding provider: %w", err)
		}

		logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

		pipe := pipeline.New(logger, provider, cfg.ProviderType, appMetrics)
		srv := server.New(logger, pipe, reg, cfg.MaxUploadMB*bytesPerMB)

		logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")
		if err := srv.Run(ctx, cfg.Port); err != nil {
			return err
		}

		logger.Info("Application stopped gracefully.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
