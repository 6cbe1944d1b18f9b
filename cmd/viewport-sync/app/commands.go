// Package app provides the commands of the viewport-sync CLI.
package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/stacklok/viewport-sync/internal/logger"
	"github.com/stacklok/viewport-sync/internal/versions"
)

var rootCmd = &cobra.Command{
	Use:               "viewport-sync",
	DisableAutoGenTag: true,
	Short:             "Viewport synchronization engine",
	Long: `viewport-sync links image viewports so that navigating one propagates to the others.

Scenarios describing viewports, synchronizer groups and user actions are
replayed against an in-memory viewer and the final state is reported.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if viper.GetBool("debug") {
			logger.SetLevel(zapcore.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorw("Error displaying help", "error", err)
		}
	},
}

// NewRootCmd creates the root command of the CLI
func NewRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	if err != nil {
		logger.Errorw("Error binding debug flag", "error", err)
	}

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "", "Output format (json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := versions.GetVersionInfo()
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to read format flag: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		output, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format version info as JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(output))
		return err
	}

	_, err = fmt.Fprintf(out, "viewport-sync %s (commit %s, built %s, %s, %s)\n",
		info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
	return err
}
