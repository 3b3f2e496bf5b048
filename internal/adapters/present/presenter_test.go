package present

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/seckill-cli/internal/domain"
)

func TestPresentWritesImageAndOpensIt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "qr")
	var out bytes.Buffer
	var opened string

	p := NewFilePresenter(Options{
		Dir: dir,
		Out: &out,
		Opener: func(_ context.Context, path string) error {
			opened = path
			return nil
		},
	})

	err := p.Present(context.Background(), domain.Challenge{Image: []byte("png-bytes"), ContentType: "image/png"})
	require.NoError(t, err)

	want := filepath.Join(dir, defaultFileName)
	assert.Equal(t, want, opened)
	assert.Contains(t, out.String(), want)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestPresentIgnoresOpenerFailure(t *testing.T) {
	var out bytes.Buffer
	p := NewFilePresenter(Options{
		Dir: t.TempDir(),
		Out: &out,
		Opener: func(context.Context, string) error {
			return errors.New("no display")
		},
	})

	err := p.Present(context.Background(), domain.Challenge{Image: []byte("x")})
	require.NoError(t, err)
	assert.Contains(t, out.String(), defaultFileName)
}

func TestPresentRejectsEmptyImage(t *testing.T) {
	p := NewFilePresenter(Options{
		Dir: t.TempDir(),
		Opener: func(context.Context, string) error {
			t.Fatal("opener must not be called")
			return nil
		},
	})

	err := p.Present(context.Background(), domain.Challenge{})
	require.ErrorIs(t, err, errEmptyChallenge)
}
