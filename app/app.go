package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jekabolt/grbpwr-waitlist/config"
	httpapi "github.com/jekabolt/grbpwr-waitlist/internal/api/http"
	"github.com/jekabolt/grbpwr-waitlist/internal/apisrv/auth"
	apiwaitlist "github.com/jekabolt/grbpwr-waitlist/internal/apisrv/waitlist"
	"github.com/jekabolt/grbpwr-waitlist/internal/dependency"
	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	"github.com/jekabolt/grbpwr-waitlist/internal/store"
	"github.com/jekabolt/grbpwr-waitlist/internal/store/memory"
	"github.com/jekabolt/grbpwr-waitlist/internal/waitlist"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
	c    *config.Config
	opts waitlist.Options
	done chan struct{}
	once sync.Once
}

// New returns a new instance of App. opts carries the waitlist callbacks.
func New(c *config.Config, opts waitlist.Options) *App {
	return &App{
		c:    c,
		opts: opts,
		done: make(chan struct{}),
	}
}

// OpenRepository connects the configured storage backend.
func OpenRepository(ctx context.Context, c *config.Config) (dependency.Repository, error) {
	switch c.Storage.Type {
	case config.StorageMemory:
		slog.Default().WarnContext(ctx, "using in-memory storage, entries are lost on restart")
		return memory.New(), nil
	case config.StorageMySQL:
		st, err := store.New(ctx, c.DB)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting waitlist")

	a.db, err = OpenRepository(ctx, a.c)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't open storage", slog.String("err", err.Error()))
		return err
	}

	authS, err := auth.New(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new auth server", slog.String("err", err.Error()))
		return err
	}

	opts := a.opts
	if opts.OnStatusChange == nil {
		opts.OnStatusChange = logStatusChange
	}
	svc, err := waitlist.New(a.c.Waitlist, a.db, opts)
	if err != nil {
		slog.Default().ErrorContext(ctx, "invalid waitlist config", slog.String("err", err.Error()))
		return err
	}

	// start API server
	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, a.db, authS, apiwaitlist.New(svc)); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server", slog.String("err", err.Error()))
		return err
	}

	go func() {
		<-a.hs.Done()
		a.closeDone()
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed", slog.String("err", err.Error()))
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	a.closeDone()
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}

func (a *App) closeDone() {
	a.once.Do(func() { close(a.done) })
}

func logStatusChange(ctx context.Context, e entity.WaitlistEntry) error {
	slog.Default().InfoContext(ctx, "waitlist entry processed",
		slog.String("id", e.Id),
		slog.String("status", string(e.Status)),
		slog.String("processed_by", e.ProcessedBy.String),
	)
	return nil
}
