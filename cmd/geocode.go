package main

import (
	"fmt"
	"os"

	"github.com/Houeta/address-mapper/internal/exporter"
	"github.com/Houeta/address-mapper/internal/geocoding"
	"github.com/Houeta/address-mapper/internal/metrics"
	"github.com/Houeta/address-mapper/internal/parser"
	"github.com/Houeta/address-mapper/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	geocodeInput  string
	geocodeOutput string
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Geocode a CSV file headlessly and write the augmented CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, err := os.Open(geocodeInput)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer in.Close()

		records, err := parser.Parse(in)
		if err != nil {
			return fmt.Errorf("failed to parse input: %w", err)
		}

		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:     geocoding.ProviderType(cfg.ProviderType),
			APIKey:   cfg.APIKey,
			MinDelay: cfg.RateDelay,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create geocoding provider: %w", err)
		}

		appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
		pipe := pipeline.New(logger, provider, cfg.ProviderType, appMetrics)

		bar := progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription("Geocoding"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		report := pipe.Run(cmd.Context(), records, func(done, _ int) {
			_ = bar.Set(done)
		})

		out, err := os.Create(geocodeOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()

		if err := exporter.WriteCSV(out, report); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}

		if report.Warning != "" {
			fmt.Fprintln(os.Stderr, "warning:", report.Warning)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Geocoded %d of %d addresses (%d failed), written to %s\n",
			len(report.Succeeded()), report.Len(), len(report.Failed()), geocodeOutput)

		return nil
	},
}

func init() {
	geocodeCmd.Flags().StringVarP(&geocodeInput, "input", "i", "", "input CSV file (required)")
	geocodeCmd.Flags().StringVarP(&geocodeOutput, "output", "o", "", "output CSV file (required)")
	_ = geocodeCmd.MarkFlagRequired("input")
	_ = geocodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(geocodeCmd)
}
