package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/seckill-cli/internal/application"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in by QR code unless the stored session is still valid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withEngine(cmd, func(engine *application.Engine) error {
				err := runWaitSpinner(cmd.Context(), cmd.ErrOrStderr(), staticLabel("Logging in..."), func(ctx context.Context) error {
					return engine.Login(ctx)
				})
				if err != nil {
					return fmt.Errorf("login: %w", err)
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
				return nil
			})
		},
	}
}

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the stored session",
	}

	cmd.AddCommand(newSessionStatusCmd(a), newSessionClearCmd(a))

	return cmd
}

func newSessionStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe the stored session without logging in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withEngine(cmd, func(engine *application.Engine) error {
				status, err := engine.SessionStatus(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				state := "invalid"
				if status.Valid {
					state = "valid"
				}
				_, _ = fmt.Fprintf(out, "session: %s\n", state)
				if !status.Stored {
					_, _ = fmt.Fprintln(out, "stored: no")
					return nil
				}
				_, _ = fmt.Fprintf(out, "stored: yes (%d cookies)\n", status.Cookies)
				if !status.SavedAt.IsZero() {
					_, _ = fmt.Fprintf(out, "saved at: %s\n", status.SavedAt.Local().Format("2006-01-02 15:04:05"))
				}
				return nil
			})
		},
	}
}

func newSessionClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withEngine(cmd, func(engine *application.Engine) error {
				if err := engine.ClearSession(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Session cleared")
				return nil
			})
		},
	}
}
