package main

import (
	"github.com/spf13/cobra"

	"scartix/internal/config"
	"scartix/internal/logging"
)

var (
	logLevel string
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scartix",
	Short: "SCARTIX - chitosan TPMS scaffold property predictor",
	Long: `SCARTIX predicts mechanical and biological properties of chitosan TPMS
scaffolds from porosity (30-90%) and scores them against tissue requirements.

The same engine backs the HTTP server; this tool runs it offline.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		logging.Setup(level, "console")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}
