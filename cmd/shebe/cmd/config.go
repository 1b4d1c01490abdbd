package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/shebe-oss/shebe/internal/toolops"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration surface",
		Long: `Print the configuration Shebe resolved from defaults, an optional
config file, and SHEBE_-prefixed environment variables.

Example:
  shebe config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := toolops.GetConfig(cfg)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
