// Package app composes the CLI run: configuration, logging, the session
// lock, the tracking store and the Telegram client, wired through fx, plus
// the lifecycle that drives one scan-and-download run to completion.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/matheus3301/tgrab/internal/bus"
	"github.com/matheus3301/tgrab/internal/config"
	"github.com/matheus3301/tgrab/internal/lock"
	"github.com/matheus3301/tgrab/internal/logging"
	"github.com/matheus3301/tgrab/internal/media"
	"github.com/matheus3301/tgrab/internal/session"
	"github.com/matheus3301/tgrab/internal/store"
	"github.com/matheus3301/tgrab/internal/tg"
	"github.com/matheus3301/tgrab/internal/track"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var errMissingCredentials = errors.New("missing API credentials: set api_id, api_hash and phone in the config file or the TELEGRAM_API_ID, TELEGRAM_API_HASH and TELEGRAM_PHONE environment variables")

// Params holds the resolved command line passed to the fx module.
type Params struct {
	SessionName string
	ListChats   bool
	ChatRef     string
	MediaType   string
	Extensions  string
	StartDate   string
	EndDate     string
	OutputDir   string
	DBPath      string // optional override; empty = config or default
	Concurrency int
}

// Module returns the fx module for one CLI run, composing all providers and
// lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("tgrab",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideConfig,
			provideLock,
			provideBus,
			provideTracking,
			provideFilter,
			provideClient,
			newReporter,
			newRunner,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	if err := session.EnsureDir(p.SessionName); err != nil {
		return nil, err
	}
	hostname, _ := os.Hostname()
	return logging.New(session.LogPath(p.SessionName), p.SessionName, hostname)
}

func provideConfig(logger *zap.Logger) (*config.Config, error) {
	cfg, err := config.Load(session.ConfigPath())
	if os.IsNotExist(err) {
		// No config file yet; the environment may still carry credentials.
		cfg = &config.Config{}
	} else if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if !cfg.HasCredentials() {
		logger.Warn("no API credentials in config or environment")
	}
	return cfg, nil
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	hostname, _ := os.Hostname()
	logger.Info("acquiring session lock", zap.String("session", p.SessionName))
	l, err := lock.Acquire(session.Dir(p.SessionName), hostname)
	if err != nil {
		return nil, err
	}
	logger.Info("session lock acquired")
	return l, nil
}

func provideBus() *bus.Bus {
	return bus.New()
}

// Tracking bundles the tracker with its backing store so the lifecycle can
// close the database on shutdown. DB is nil when tracking is degraded.
type Tracking struct {
	Tracker *track.Tracker
	DB      *store.DB
}

// provideTracking opens the shared tracking database. Failure to open or
// migrate degrades tracking instead of aborting: downloads proceed, results
// are reported from memory.
func provideTracking(p Params, cfg *config.Config, logger *zap.Logger) *Tracking {
	hostname, _ := os.Hostname()

	dbPath := p.DBPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath = session.DefaultDBPath()
	}

	db, err := store.Open(dbPath)
	if err != nil {
		logger.Warn("tracking store unavailable, continuing without tracking",
			zap.String("path", dbPath), zap.Error(err))
		return &Tracking{Tracker: track.Disabled(hostname)}
	}
	result, err := db.Migrate()
	if err != nil {
		logger.Warn("tracking store migration failed, continuing without tracking",
			zap.String("path", dbPath), zap.Error(err))
		_ = db.Close()
		return &Tracking{Tracker: track.Disabled(hostname)}
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	}
	logger.Info("tracking store initialized", zap.String("path", dbPath))
	return &Tracking{Tracker: track.New(db, hostname), DB: db}
}

func provideFilter(p Params) (*media.Filter, error) {
	var start, end time.Time
	var err error
	if p.StartDate != "" {
		if start, err = media.ParseDate(p.StartDate, false); err != nil {
			return nil, err
		}
	}
	if p.EndDate != "" {
		if end, err = media.ParseDate(p.EndDate, true); err != nil {
			return nil, err
		}
	}
	return media.NewFilter(p.MediaType, p.Extensions, start, end)
}

func provideClient(p Params, cfg *config.Config, logger *zap.Logger) (*tg.Client, error) {
	if !cfg.HasCredentials() {
		return nil, errMissingCredentials
	}
	return tg.NewClient(cfg.APIID, cfg.APIHash,
		session.TelegramSessionPath(p.SessionName), cfg.Phone, logger), nil
}

func registerLifecycle(lc fx.Lifecycle, sh fx.Shutdowner, r *runner, rep *reporter, tr *Tracking, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			rep.start()
			go func() {
				code := 0
				if err := r.run(); err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					logger.Error("run failed", zap.Error(err))
					code = 1
				}
				_ = sh.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			r.stop()
			rep.stop()
			if tr.DB != nil {
				if err := tr.DB.Close(); err != nil {
					logger.Warn("error closing tracking store", zap.Error(err))
				}
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("run finished")
			return nil
		},
	})
}
