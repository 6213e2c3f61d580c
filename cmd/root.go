package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/antoineclaval/new-orleans-surveillance-map/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "camimport",
	Short: "Geocoding import pipeline for the New Orleans surveillance camera map",
	Long:  "Resolves loose camera sighting records (business names, rough addresses, raw coordinates) into import-ready rows for the camera map's bulk importer.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
