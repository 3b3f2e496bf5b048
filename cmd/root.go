package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/seckill-cli/internal/adapters/present"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&app{now: time.Now, opener: present.SystemOpener})
}

func newRootCmdWith(a *app) *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:           "sk",
		Short:         "Flash sale CLI (sk): log in, reserve and race for limited items",
		Long:          "sk keeps a logged-in session, books pre-sale reservations and, at the configured instant, runs concurrent workers that try to place an order for a limited item.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default ~/.seckill/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(a),
		newSessionCmd(a),
		newReserveCmd(a),
		newRunCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
	)

	return rootCmd
}

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newLogger(w io.Writer, level string, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
