package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/seckill-cli/internal/application"
)

func newReserveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reserve",
		Short: "Book the item's pre-sale reservation and check the order context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.ValidateReserve(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			return a.withEngine(cmd, func(engine *application.Engine) error {
				result, err := engine.Reserve(cmd.Context(), application.ReserveRequest{
					Item:  a.cfg.ItemTarget(),
					Buyer: a.cfg.BuyerCredentials(),
				})
				out := cmd.OutOrStdout()
				if result.Message != "" {
					_, _ = fmt.Fprintf(out, "reservation: %s\n", result.Message)
				}
				if err != nil {
					return err
				}

				t := result.Template
				_, _ = fmt.Fprintf(out, "item: %s x%d\n", t.Item.SKU, t.Item.Quantity)
				_, _ = fmt.Fprintf(out, "ship to: %s (%s), address %s\n", t.Address.Name, t.MaskedMobile(), t.Address.ID)
				_, _ = fmt.Fprintf(out, "invoice: %t\n", t.WithInvoice)
				return nil
			})
		},
	}
}
