package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/seckill-cli/internal/adapters/render/runplan"
	"github.com/bnema/seckill-cli/internal/application"
	"github.com/bnema/seckill-cli/internal/domain"
)

type runFlags struct {
	workers      int
	at           string
	now          bool
	attemptsFile string
}

func newRunCmd(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Wait for the sale instant and race the configured workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyRunFlags(a, flags)
			if err := a.cfg.ValidateRun(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.withEngine(cmd, func(engine *application.Engine) error {
				return runAtDeadline(ctx, cmd, a, engine, flags.now)
			})
		},
	}

	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Number of concurrent workers (overrides worker.count)")
	cmd.Flags().StringVar(&flags.at, "at", "", "Fire time HH:MM:SS (overrides schedule.at)")
	cmd.Flags().BoolVar(&flags.now, "now", false, "Start the workers immediately")
	cmd.Flags().StringVar(&flags.attemptsFile, "attempts-file", "", "Append every attempt as JSON lines to this file")

	return cmd
}

func applyRunFlags(a *app, flags runFlags) {
	if flags.workers > 0 {
		a.cfg.Worker.Count = flags.workers
	}
	if flags.at != "" {
		a.cfg.Schedule.At = flags.at
	}
	if flags.attemptsFile != "" {
		a.cfg.Log.AttemptsFile = flags.attemptsFile
	}
}

func runAtDeadline(ctx context.Context, cmd *cobra.Command, a *app, engine *application.Engine, immediate bool) error {
	out := cmd.OutOrStdout()

	plan, err := engine.Plan(ctx, application.RunRequest{
		Item:    a.cfg.ItemTarget(),
		Buyer:   a.cfg.BuyerCredentials(),
		Workers: a.cfg.Worker.Count,
	})
	if err != nil {
		return err
	}

	rendered, err := runplan.RenderPlan(plan, runplan.RenderOptions{Now: a.now()})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, rendered)

	if !immediate {
		label := func() string {
			return fmt.Sprintf("Waiting for %s (%s left)...", plan.Target.At.Format("15:04:05"), plan.Target.Remaining(a.now()).Truncate(time.Second))
		}
		if err := runWaitSpinner(ctx, cmd.ErrOrStderr(), label, func(ctx context.Context) error {
			return engine.Await(ctx, plan)
		}); err != nil {
			return fmt.Errorf("wait for target: %w", err)
		}
	}

	record, err := engine.Execute(ctx, plan)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "run %s: %s after %d attempts\n", record.ID, record.Status, record.Attempts)
	for _, link := range record.PurchaseURLs {
		_, _ = fmt.Fprintf(out, "pay: %s\n", link)
	}
	if record.Status != domain.RunStatusAcquired {
		return fmt.Errorf("run %s ended without an order", record.ID)
	}
	return nil
}
