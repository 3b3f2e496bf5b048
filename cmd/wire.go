package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnema/seckill-cli/internal/adapters/attemptlog"
	"github.com/bnema/seckill-cli/internal/adapters/jdhttp"
	"github.com/bnema/seckill-cli/internal/adapters/present"
	tomlrepo "github.com/bnema/seckill-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/seckill-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/seckill-cli/internal/adapters/secrets/file"
	redisstore "github.com/bnema/seckill-cli/internal/adapters/secrets/redis"
	"github.com/bnema/seckill-cli/internal/application"
	"github.com/bnema/seckill-cli/internal/config"
	"github.com/bnema/seckill-cli/internal/ports"
)

type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *slog.Logger

	now    func() time.Time
	opener present.Opener
}

func (a *app) load(cmd *cobra.Command, opts rootOptions) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	v, cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}

	a.v = v
	a.cfg = cfg
	a.logger = logger
	return nil
}

// withEngine wires the adapters for one command and releases them once fn
// returns.
func (a *app) withEngine(cmd *cobra.Command, fn func(*application.Engine) error) (err error) {
	engine, closers, err := a.wire(cmd)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = errors.Join(err, closers[i]())
		}
	}()
	if err != nil {
		return err
	}

	return fn(engine)
}

func (a *app) wire(cmd *cobra.Command) (*application.Engine, []func() error, error) {
	var closers []func() error
	cfg := a.cfg

	rule, err := cfg.ScheduleRule()
	if err != nil {
		return nil, closers, err
	}

	secrets, closeSecrets, err := a.secretStore(cmd.Context())
	if err != nil {
		return nil, closers, fmt.Errorf("wire session backend: %w", err)
	}
	if closeSecrets != nil {
		closers = append(closers, closeSecrets)
	}

	client, err := jdhttp.New(jdhttp.Options{
		Hosts: jdhttp.Hosts{
			Passport: cfg.Endpoints.Passport,
			QR:       cfg.Endpoints.QR,
			Order:    cfg.Endpoints.Order,
			Item:     cfg.Endpoints.Item,
			ItemKO:   cfg.Endpoints.ItemKO,
			Marathon: cfg.Endpoints.Marathon,
			Yushou:   cfg.Endpoints.Yushou,
		},
		Now: a.now,
	})
	if err != nil {
		return nil, closers, fmt.Errorf("wire http client: %w", err)
	}

	runs, err := tomlrepo.NewRepository(a.v)
	if err != nil {
		return nil, closers, fmt.Errorf("wire run history: %w", err)
	}

	recorder := attemptlog.New(cfg.Log.AttemptsFile)
	closers = append(closers, recorder.Close)

	clock := appClock{now: a.now}
	sessions := application.NewSessionStore(secrets, cfg.Session.Key, clock)
	presenter := present.NewFilePresenter(present.Options{
		Out:    cmd.OutOrStdout(),
		Opener: a.opener,
		Logger: a.logger,
	})
	auth := application.NewAuthenticator(client, client, sessions, presenter, application.AuthOptions{
		PollInterval: cfg.Auth.PollInterval,
		PollAttempts: cfg.Auth.PollAttempts,
		Logger:       a.logger,
	})

	var attempts ports.AttemptRecorder = ports.NopAttemptRecorder{}
	if recorder != nil {
		attempts = recorder
	}

	engine := application.NewEngine(application.EngineDeps{
		Sessions:    sessions,
		Transport:   client,
		Auth:        auth,
		Resolver:    application.NewOrderResolver(auth, client, a.logger),
		Scheduler:   application.NewScheduler(clock, rule, a.logger),
		Acquisition: client,
		Recorder:    attempts,
		Runs:        runs,
		Clock:       clock,
		Logger:      a.logger,
	}, application.WorkerOptions{
		StopOnSuccess:      cfg.Worker.StopOnSuccess,
		MaxRPS:             cfg.Worker.MaxRPS,
		ResolveMaxAttempts: cfg.Worker.ResolveMaxAttempts,
	})

	return engine, closers, nil
}

func (a *app) secretStore(ctx context.Context) (ports.SecretStore, func() error, error) {
	cfg := a.cfg
	if err := cfg.ValidateSession(); err != nil {
		return nil, nil, err
	}

	switch cfg.Session.Backend {
	case config.SessionBackendPass:
		store, err := chainstore.NewPassFirstWithFileFallback(cfg.Session.Dir)
		return store, nil, err
	case config.SessionBackendRedis:
		store, err := redisstore.Dial(ctx, cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return filestore.NewStore(cfg.Session.Dir), nil, nil
	}
}

type appClock struct {
	now func() time.Time
}

func (c appClock) Now() time.Time {
	return c.now()
}
