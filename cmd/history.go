package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/seckill-cli/internal/adapters/render/runplan"
	"github.com/bnema/seckill-cli/internal/application"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show past runs, or one run in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd, func(engine *application.Engine) error {
				if len(args) == 1 {
					record, err := engine.Run(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					rendered, err := runplan.RenderRun(record, runplan.RenderOptions{Now: a.now()})
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
					return err
				}

				runs, err := engine.History(cmd.Context())
				if err != nil {
					return err
				}
				if limit > 0 && len(runs) > limit {
					runs = runs[:limit]
				}

				rendered, err := runplan.RenderHistory(runs, runplan.RenderOptions{Now: a.now()})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return err
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many runs (0 shows all)")

	return cmd
}
