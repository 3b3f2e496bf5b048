package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/seckill-cli/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if used := a.v.ConfigFileUsed(); used != "" {
				_, _ = fmt.Fprintf(out, "# %s\n", used)
			}
			return config.Dump(out, a.v)
		},
	})

	return cmd
}
