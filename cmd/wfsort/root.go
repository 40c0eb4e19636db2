package main

import (
	"wfsort/internal/config"
	"wfsort/internal/logging"
	"wfsort/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wfsort",
	Short: "wfsort - workflow definition canonicalizer",
	Long: `wfsort normalizes workflow-definition documents into a canonical form:
transient fields are stripped, object keys are sorted, and groups, items,
dependencies and tags are deterministically ordered so that semantically
equivalent documents produce byte-identical JSON (useful for diffing and
version control).`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("wfsort version {{.Version}}\n")
}

// newLogger builds a logger from the loaded configuration.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}
