package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sjostromVilgot/Facta-sub000/internal/app"
	"github.com/sjostromVilgot/Facta-sub000/internal/config"
	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
	"github.com/sjostromVilgot/Facta-sub000/internal/notify"
	"github.com/sjostromVilgot/Facta-sub000/internal/progression"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
)

// runtime is what every command builds on: config, logger, the progress
// store on the configured backend and the content provider.
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *store.Store // nil on the redis and memory backends
	progress *store.Progress
	content  *content.Provider
	closers  []func() error
}

// openRuntime wires the runtime. With tui set, logs go to a file so they
// stay out of the terminal UI.
func openRuntime(cmd *cobra.Command, tui bool) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logFile := cfg.Log.File
	if tui && logFile == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		logFile = filepath.Join(dir, "facta.log")
	}
	log, err := logger.New(cfg.LogMode(), logFile)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log}
	kv, err := rt.openKV(cmd)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.progress = store.NewProgress(kv, log)

	rt.content, err = content.NewProvider(content.Options{
		PackDir: cfg.Content.PackDir,
		Logger:  log,
	})
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}

	log.Debug("runtime ready", "backend", cfg.Store.Backend, "facts", len(rt.content.Facts()))
	return rt, nil
}

func (rt *runtime) openKV(cmd *cobra.Command) (store.KV, error) {
	switch rt.cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemoryKV(), nil

	case config.BackendRedis:
		kv, err := store.OpenRedis(background(cmd), store.RedisOptions{
			Addr:     rt.cfg.Redis.Addr,
			Password: rt.cfg.Redis.Password,
			DB:       rt.cfg.Redis.DB,
			Prefix:   rt.cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		rt.closers = append(rt.closers, kv.Close)
		return kv, nil
	}

	db, err := rt.openDB(cmd)
	if err != nil {
		return nil, err
	}
	return db.KV(), nil
}

// openDB opens the SQLite database once. The LLM request log lives there
// whatever the progress backend.
func (rt *runtime) openDB(cmd *cobra.Command) (*store.Store, error) {
	if rt.db != nil {
		return rt.db, nil
	}
	dbPath, err := resolveDBPath(cmd, rt.cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.db = db
	rt.closers = append(rt.closers, db.Close)
	return db, nil
}

// deps builds screen dependencies. scheduler may be nil.
func (rt *runtime) deps(scheduler *notify.Scheduler) *screen.Deps {
	return &screen.Deps{
		Progress:   rt.progress,
		Content:    rt.content,
		Quiz:       quiz.NewController(rt.content, rt.progress, rt.log, nil),
		Aggregator: progression.NewAggregator(rt.progress, rt.log, nil),
		Scheduler:  scheduler,
		Logger:     rt.log,
	}
}

func (rt *runtime) Close() {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i]())
	}
	if err := errors.Join(errs...); err != nil {
		rt.log.Warn("close runtime", "error", err)
	}
	rt.log.Sync()
}

// runApp launches the TUI, optionally straight into a quiz mode.
func runApp(cmd *cobra.Command, mode quiz.Mode) error {
	rt, err := openRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	loc, err := rt.cfg.Location()
	if err != nil {
		return err
	}
	scheduler := notify.NewScheduler(notify.LogNotifier{Log: rt.log}, rt.log, loc)

	return app.Run(app.Options{Deps: rt.deps(scheduler), Mode: mode})
}

func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
