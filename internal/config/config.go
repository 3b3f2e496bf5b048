// Package config loads the CLI configuration from ~/.seckill/config.toml,
// SECKILL_* environment variables and a working-directory .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/seckill-cli/internal/domain"
)

const (
	EnvPrefix = "SECKILL"

	configDir  = ".seckill"
	configName = "config"
	configType = "toml"
)

const (
	SessionBackendFile  = "file"
	SessionBackendPass  = "pass"
	SessionBackendRedis = "redis"
)

type Config struct {
	Item      ItemConfig      `mapstructure:"item"`
	Buyer     BuyerConfig     `mapstructure:"buyer"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Session   SessionConfig   `mapstructure:"session"`
	History   HistoryConfig   `mapstructure:"history"`
	Log       LogConfig       `mapstructure:"log"`
	Endpoints EndpointsConfig `mapstructure:"endpoints"`
}

type ItemConfig struct {
	SKU      string `mapstructure:"sku"`
	Quantity int    `mapstructure:"quantity"`
}

type BuyerConfig struct {
	PaymentPassword string `mapstructure:"payment_password"`
	EID             string `mapstructure:"eid"`
	FP              string `mapstructure:"fp"`
}

type WorkerConfig struct {
	Count              int     `mapstructure:"count"`
	StopOnSuccess      bool    `mapstructure:"stop_on_success"`
	MaxRPS             float64 `mapstructure:"max_rps"`
	ResolveMaxAttempts int     `mapstructure:"resolve_max_attempts"`
}

type ScheduleConfig struct {
	At string `mapstructure:"at"`
}

type AuthConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PollAttempts int           `mapstructure:"poll_attempts"`
}

type SessionConfig struct {
	Backend       string `mapstructure:"backend"`
	Key           string `mapstructure:"key"`
	Dir           string `mapstructure:"dir"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
}

type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	AttemptsFile string `mapstructure:"attempts_file"`
}

// EndpointsConfig overrides the remote base URLs. Empty values keep the
// production hosts.
type EndpointsConfig struct {
	Passport string `mapstructure:"passport"`
	QR       string `mapstructure:"qr"`
	Order    string `mapstructure:"order"`
	Item     string `mapstructure:"item"`
	ItemKO   string `mapstructure:"itemko"`
	Marathon string `mapstructure:"marathon"`
	Yushou   string `mapstructure:"yushou"`
}

// keys lists every setting so env vars resolve even without a config file.
var keys = []string{
	"item.sku", "item.quantity",
	"buyer.payment_password", "buyer.eid", "buyer.fp",
	"worker.count", "worker.stop_on_success", "worker.max_rps", "worker.resolve_max_attempts",
	"schedule.at",
	"auth.poll_interval", "auth.poll_attempts",
	"session.backend", "session.key", "session.dir",
	"session.redis_addr", "session.redis_password", "session.redis_prefix",
	"history.path",
	"log.attempts_file",
	"endpoints.passport", "endpoints.qr", "endpoints.order", "endpoints.item",
	"endpoints.itemko", "endpoints.marathon", "endpoints.yushou",
}

var secretKeys = map[string]bool{
	"buyer.payment_password": true,
	"session.redis_password": true,
}

// LoadDotEnv reads .env from the working directory. Variables already set in
// the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// New returns a viper instance with defaults and env bindings but no file.
func New(homeDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigType(configType)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	v.SetDefault("worker.stop_on_success", true)
	v.SetDefault("worker.max_rps", 0)
	v.SetDefault("worker.resolve_max_attempts", 0)
	v.SetDefault("schedule.at", domain.DefaultScheduleRule.String())
	v.SetDefault("auth.poll_interval", "5s")
	v.SetDefault("auth.poll_attempts", 36)
	v.SetDefault("session.backend", SessionBackendFile)
	v.SetDefault("session.key", "sessions/default.json")
	v.SetDefault("session.dir", filepath.Join(homeDir, configDir, "secrets"))
	v.SetDefault("session.redis_prefix", "seckill:")
	v.SetDefault("history.path", filepath.Join(homeDir, configDir, "history.toml"))

	return v
}

// Load reads the config file at path, or ~/.seckill/config.toml when path is
// empty. Only the default file may be absent.
func Load(path string) (*viper.Viper, *Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := New(homeDir)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}

	return v, cfg, nil
}

func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) ItemTarget() domain.Item {
	return domain.Item{SKU: domain.SKU(strings.TrimSpace(c.Item.SKU)), Quantity: c.Item.Quantity}
}

func (c *Config) BuyerCredentials() domain.BuyerCredentials {
	return domain.BuyerCredentials{
		PaymentPassword: c.Buyer.PaymentPassword,
		EID:             c.Buyer.EID,
		FP:              c.Buyer.FP,
	}
}

func (c *Config) ScheduleRule() (domain.ScheduleRule, error) {
	return domain.ParseScheduleRule(c.Schedule.At)
}

// ValidateReserve checks the item and buyer inputs, which have no default.
func (c *Config) ValidateReserve() error {
	return errors.Join(c.ItemTarget().Validate(), c.BuyerCredentials().Validate())
}

// ValidateRun checks every operator input a run needs. All problems are
// reported at once.
func (c *Config) ValidateRun() error {
	errs := []error{c.ValidateReserve()}
	if c.Worker.Count <= 0 {
		errs = append(errs, fmt.Errorf("worker count must be positive, got %d", c.Worker.Count))
	}
	if c.Worker.MaxRPS < 0 {
		errs = append(errs, fmt.Errorf("worker max_rps must not be negative"))
	}
	if _, err := c.ScheduleRule(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c *Config) ValidateSession() error {
	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendPass:
		if strings.TrimSpace(c.Session.Dir) == "" {
			return errors.New("session dir is required")
		}
	case SessionBackendRedis:
		if strings.TrimSpace(c.Session.RedisAddr) == "" {
			return errors.New("session redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	return nil
}
