package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/antoineclaval/new-orleans-surveillance-map/internal/batch"
	"github.com/antoineclaval/new-orleans-surveillance-map/pkg/nominatim"
)

var (
	reverseInput    string
	reverseOutput   string
	reverseFailures string
	reverseBatchTag string
)

var reverseCmd = &cobra.Command{
	Use:   "reverse",
	Short: "Reverse-geocode camera coordinates into an import-ready CSV",
	Long:  "Resolves each Latitude/Longitude pair to a street address. Rows arrive pre-vetted, so resolved output imports with vetted status under the run's batch tag.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := batch.ReadCoordRecords(reverseInput)
		if err != nil {
			return err
		}

		geo := nominatim.NewClient(
			nominatim.WithBaseURL(cfg.Nominatim.BaseURL),
			nominatim.WithUserAgent(cfg.Nominatim.UserAgent),
			nominatim.WithRateInterval(cfg.Nominatim.RateInterval()),
			nominatim.WithHTTPClient(httpClient(cfg.Nominatim.Timeout())),
		)

		batchTag := reverseBatchTag
		if batchTag == "" {
			batchTag = cfg.Import.BatchTag
		}

		sum, err := batch.RunReverse(ctx, geo, records, reverseOutput, reverseFailures,
			cfg.Import.CameraType, batchTag, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		zap.L().Info("reverse geocode complete",
			zap.Int("resolved", sum.Resolved),
			zap.Int("unresolved", sum.Unresolved),
			zap.String("output", reverseOutput),
		)
		return nil
	},
}

// httpClient builds the transport shared by provider clients.
func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func init() {
	reverseCmd.Flags().StringVar(&reverseInput, "input", "", "path to coordinates CSV with Latitude/Longitude columns (required)")
	reverseCmd.Flags().StringVar(&reverseOutput, "output", "nopd_camera_import.csv", "path for the resolved import CSV")
	reverseCmd.Flags().StringVar(&reverseFailures, "failures", "nopd_import_failures.csv", "path for the unresolved records CSV")
	reverseCmd.Flags().StringVar(&reverseBatchTag, "batch-tag", "", "reported_by tag stamped on imported rows (default from config)")
	_ = reverseCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(reverseCmd)
}
