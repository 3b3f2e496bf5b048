// Package present shows the login challenge to the operator by writing the
// QR image to a file and handing it to the desktop image viewer.
package present

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/bnema/seckill-cli/internal/domain"
)

const defaultFileName = "seckill-qrcode.png"

var errEmptyChallenge = errors.New("challenge image is empty")

// Opener hands a file path to the platform viewer.
type Opener func(ctx context.Context, path string) error

type Options struct {
	// Dir defaults to os.TempDir().
	Dir    string
	Out    io.Writer
	Opener Opener
	Logger *slog.Logger
}

type FilePresenter struct {
	dir    string
	out    io.Writer
	open   Opener
	logger *slog.Logger
}

func NewFilePresenter(opts Options) *FilePresenter {
	dir := opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	open := opts.Opener
	if open == nil {
		open = SystemOpener
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &FilePresenter{dir: dir, out: out, open: open, logger: logger}
}

// Present writes the image and prints its path. A viewer failure is logged
// and never fails the login since the path is already on screen.
func (p *FilePresenter) Present(ctx context.Context, challenge domain.Challenge) error {
	if len(challenge.Image) == 0 {
		return errEmptyChallenge
	}

	if err := os.MkdirAll(p.dir, 0o700); err != nil {
		return fmt.Errorf("create challenge directory: %w", err)
	}

	path := filepath.Join(p.dir, defaultFileName)
	if err := os.WriteFile(path, challenge.Image, 0o600); err != nil {
		return fmt.Errorf("write challenge image: %w", err)
	}

	_, _ = fmt.Fprintf(p.out, "Scan the QR code with the mobile app to log in:\n%s\n", path)

	if err := p.open(ctx, path); err != nil {
		p.logger.Warn("could not open challenge image", "path", path, "error", err)
	}

	return nil
}

func SystemOpener(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}

	return cmd.Start()
}
