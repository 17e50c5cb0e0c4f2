// Package app arma las dependencias compartidas por el gateway y el CLI a
// partir de la configuración.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap/zapcore"

	"petcare-companion/internal/adapters/storage/file"
	"petcare-companion/internal/adapters/storage/memory"
	"petcare-companion/internal/adapters/storage/postgres"
	"petcare-companion/internal/adapters/storage/sqlite"
	"petcare-companion/internal/backend"
	"petcare-companion/internal/config"
	"petcare-companion/internal/normalize"
	"petcare-companion/internal/notify"
	"petcare-companion/internal/page"
	"petcare-companion/internal/platform/httpclient"
	"petcare-companion/internal/platform/logger"
	"petcare-companion/internal/ports/storage"
	"petcare-companion/internal/router"
	"petcare-companion/internal/session"
)

type App struct {
	Config *config.Config
	Log    logger.Logger
	Queue  *notify.Queue
	Local  storage.Local
	Deps   page.Deps

	file *file.Store
	db   *sql.DB
}

// NewLogger arma el logger según la sección logging. out nil escribe a stderr.
func NewLogger(cfg *config.Config, out zapcore.WriteSyncer) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: logger.ParseFormat(cfg.Logging.Format),
		App:    cfg.Logging.App,
		Output: out,
	})
}

// New abre el store local, crea el cliente del backend y rehidrata la sesión.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{Config: cfg, Log: log, Queue: notify.NewQueue()}

	if err := a.openStorage(); err != nil {
		return nil, err
	}

	hc, err := httpclient.NewWithBaseURL(backend.APIBaseURL(cfg.Backend.BaseURL), cfg.Backend.Timeout)
	if err != nil {
		a.Close()
		return nil, err
	}
	hc.WithRateLimit(cfg.Backend.RPS, cfg.Backend.Burst)

	norm := normalize.New(normalize.ImageResolver{
		MediaURL:    cfg.Media.BaseURL,
		Placeholder: cfg.Media.Placeholder,
	})
	client := backend.New(hc, norm, log.With(map[string]any{"component": "backend"}))

	sess := session.NewStore(a.Local, client, session.Options{
		TTL:     cfg.Session.TTL,
		Sliding: cfg.Session.Sliding,
	})
	hc.Headers = func(ctx context.Context) map[string]string {
		if tok := sess.BearerToken(ctx); tok != "" {
			return map[string]string{"Authorization": tok}
		}
		return nil
	}
	if err := sess.Hydrate(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("hydrate session: %w", err)
	}

	a.Deps = page.Deps{
		Backend:     client,
		Session:     sess,
		Notify:      notify.Fanout{a.Queue, notify.LogSink{Log: log.With(map[string]any{"component": "notify"})}},
		Log:         log,
		Store:       a.Local,
		Placeholder: cfg.Media.Placeholder,
		Now:         time.Now,
	}
	return a, nil
}

func (a *App) openStorage() error {
	cfg := a.Config.Storage
	switch cfg.Driver {
	case "memory":
		a.Local = memory.NewLocalStore()
	case "file":
		s, err := file.New(cfg.Path)
		if err != nil {
			return err
		}
		a.file = s
		a.Local = s
	case "sqlite":
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		a.db = db
		a.Local = sqlite.NewLocalStore(db)
	case "postgres":
		db, err := postgres.Open(cfg.DSN)
		if err != nil {
			return fmt.Errorf("open postgres store: %w", err)
		}
		a.db = db
		a.Local = postgres.NewLocalStore(db, cfg.Namespace)
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	return nil
}

// WatchSession rehidrata la sesión cuando otro proceso (p.ej. el CLI) hace
// login o logout sobre el mismo archivo. Solo aplica al driver file; bloquea
// hasta que ctx se cancela.
func (a *App) WatchSession(ctx context.Context) error {
	if a.file == nil {
		return nil
	}
	return a.file.Watch(ctx, 150*time.Millisecond, func() {
		if err := a.Deps.Session.Hydrate(ctx); err != nil {
			a.Log.Warn("rehydrate session", map[string]any{"error": err.Error()})
			return
		}
		_, logged := a.Deps.Session.User()
		a.Log.Info("session reloaded from disk", map[string]any{"logged_in": logged})
	})
}

// Serve expone el gateway HTTP en addr y vigila la sesión en disco. Al
// cancelar ctx apaga el server con un margen de 5s.
func (a *App) Serve(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := a.WatchSession(ctx); err != nil {
			a.Log.Warn("session watcher stopped", map[string]any{"error": err.Error()})
		}
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           router.NewRouter(router.Options{Deps: a.Deps, Notifications: a.Queue}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// una pantalla hace varias llamadas al backend por request
		WriteTimeout: a.Config.Backend.Timeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("starting server", map[string]any{
			"addr":    addr,
			"backend": a.Config.Backend.BaseURL,
			"storage": a.Config.Storage.Driver,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.Log.Info("shutting down", nil)
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
