package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/antoineclaval/new-orleans-surveillance-map/internal/batch"
	"github.com/antoineclaval/new-orleans-surveillance-map/internal/resolver"
	"github.com/antoineclaval/new-orleans-surveillance-map/pkg/duckduckgo"
	"github.com/antoineclaval/new-orleans-surveillance-map/pkg/nominatim"
)

var (
	geocodeInput    string
	geocodeOutput   string
	geocodeFailures string
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Geocode loose camera records into an import-ready CSV",
	Long:  "Tries the apparent address, then the business name, then a web-search fallback for each record. Resolved rows go to the output CSV, the rest to the failures CSV for manual geocoding.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := batch.ReadInputRecords(geocodeInput)
		if err != nil {
			return err
		}

		geo := nominatim.NewClient(
			nominatim.WithBaseURL(cfg.Nominatim.BaseURL),
			nominatim.WithUserAgent(cfg.Nominatim.UserAgent),
			nominatim.WithCountryCodes(cfg.Nominatim.CountryCodes),
			nominatim.WithRateInterval(cfg.Nominatim.RateInterval()),
			nominatim.WithHTTPClient(httpClient(cfg.Nominatim.Timeout())),
		)

		// Web search is an optional capability, decided once per run.
		var search resolver.Searcher
		if cfg.Search.Enabled {
			search = duckduckgo.NewClient(
				duckduckgo.WithBaseURL(cfg.Search.BaseURL),
				duckduckgo.WithHTTPClient(httpClient(cfg.Search.Timeout())),
			)
		} else {
			zap.L().Info("web search disabled, continuing without fallback")
		}

		res := resolver.New(geo, search, cfg.Locale.City, cfg.Locale.Region, cfg.Search.MaxResults)

		sum, err := batch.RunForward(ctx, res, records, geocodeOutput, geocodeFailures, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		zap.L().Info("geocode complete",
			zap.Int("resolved", sum.Resolved),
			zap.Int("unresolved", sum.Unresolved),
			zap.String("output", geocodeOutput),
		)
		return nil
	},
}

func init() {
	geocodeCmd.Flags().StringVar(&geocodeInput, "input", "", "path to loose records CSV (required)")
	geocodeCmd.Flags().StringVar(&geocodeOutput, "output", "clean_camera_import.csv", "path for the resolved import CSV")
	geocodeCmd.Flags().StringVar(&geocodeFailures, "failures", "camera_import_failures.csv", "path for the unresolved records CSV")
	_ = geocodeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(geocodeCmd)
}
