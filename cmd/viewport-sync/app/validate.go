package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/viewport-sync/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>...",
	Short: "Validate scenario files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var invalid int

	for _, path := range args {
		cfg, err := config.LoadConfig(config.WithConfigPath(path))
		if err != nil {
			invalid++
			_, _ = fmt.Fprintf(out, "✗ %s: %v\n", path, err)
			continue
		}

		scenario := &cfg.Scenario
		_, _ = fmt.Fprintf(out, "✓ %s\n", path)
		if scenario.Name != "" {
			_, _ = fmt.Fprintf(out, "  Scenario: %s\n", scenario.Name)
		}
		_, _ = fmt.Fprintf(out, "  Viewports: %d, groups: %d, steps: %d\n",
			len(scenario.Viewports), len(scenario.Groups), len(scenario.Steps))
		if scenario.MinVersion != "" {
			_, _ = fmt.Fprintf(out, "  Minimum version: %s\n", scenario.MinVersion)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d configuration files are invalid", invalid, len(args))
	}
	return nil
}
