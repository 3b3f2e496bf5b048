package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/seckill-cli/internal/domain"
)

const sampleConfig = `
[item]
sku = "100012043978"
quantity = 2

[buyer]
payment_password = "123456"
eid = "EID"
fp = "FP"

[worker]
count = 4
max_rps = 2.5

[schedule]
at = "19:59:59"

[auth]
poll_interval = "2s"

[endpoints]
passport = "http://127.0.0.1:9999"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFileWithDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, domain.Item{SKU: "100012043978", Quantity: 2}, cfg.ItemTarget())
	assert.Equal(t, domain.BuyerCredentials{PaymentPassword: "123456", EID: "EID", FP: "FP"}, cfg.BuyerCredentials())
	assert.Equal(t, 4, cfg.Worker.Count)
	assert.InDelta(t, 2.5, cfg.Worker.MaxRPS, 0.0001)
	assert.True(t, cfg.Worker.StopOnSuccess)
	assert.Equal(t, 2*time.Second, cfg.Auth.PollInterval)
	assert.Equal(t, 36, cfg.Auth.PollAttempts)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	assert.Equal(t, filepath.Join(home, ".seckill", "secrets"), cfg.Session.Dir)
	assert.Equal(t, filepath.Join(home, ".seckill", "history.toml"), cfg.History.Path)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Endpoints.Passport)
	assert.Empty(t, cfg.Endpoints.QR)

	rule, err := cfg.ScheduleRule()
	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleRule{Hour: 19, Minute: 59, Second: 59}, rule)
	require.NoError(t, cfg.ValidateRun())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SECKILL_ITEM_SKU", "555")
	t.Setenv("SECKILL_WORKER_COUNT", "9")
	t.Setenv("SECKILL_SESSION_BACKEND", "redis")

	_, cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "555", cfg.Item.SKU)
	assert.Equal(t, 9, cfg.Worker.Count)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
}

func TestLoadWithoutDefaultFileUsesEnvOnly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SECKILL_BUYER_EID", "from-env")

	_, cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Buyer.EID)
	assert.Equal(t, domain.DefaultScheduleRule.String(), cfg.Schedule.At)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidateRunReportsEveryMissingInput(t *testing.T) {
	cfg := &Config{Schedule: ScheduleConfig{At: "bad"}}

	err := cfg.ValidateRun()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "sku is required")
	assert.Contains(t, msg, "payment password is required")
	assert.Contains(t, msg, "worker count must be positive")
	assert.Contains(t, msg, "parse schedule time")
}

func TestValidateSession(t *testing.T) {
	assert.NoError(t, (&Config{Session: SessionConfig{Backend: "file", Dir: "/tmp/x"}}).ValidateSession())
	assert.Error(t, (&Config{Session: SessionConfig{Backend: "redis"}}).ValidateSession())
	assert.Error(t, (&Config{Session: SessionConfig{Backend: "vault"}}).ValidateSession())
}

func TestDumpMasksSecrets(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v, _, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Dump(&out, v))

	assert.Contains(t, out.String(), "[buyer]")
	assert.Contains(t, out.String(), maskedValue)
	assert.NotContains(t, out.String(), "123456")
	assert.Contains(t, out.String(), "100012043978")
}

func TestValidateReserveIgnoresWorkerCount(t *testing.T) {
	cfg := &Config{
		Item:  ItemConfig{SKU: "1", Quantity: 1},
		Buyer: BuyerConfig{PaymentPassword: "p", EID: "e", FP: "f"},
	}

	require.NoError(t, cfg.ValidateReserve())
	require.Error(t, cfg.ValidateRun())
}
