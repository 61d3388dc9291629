package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dart-research/disclosure-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "disclosure-cli",
	Short: "Question answering over corporate valuation disclosure reports",
	Long:  "Classifies free-text questions, extracts the business keyword, and runs peer-set lookups, financial-ratio queries, and aggregate analyses over the disclosure report store.",
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
