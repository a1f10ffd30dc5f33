package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	xhttp "github.com/elysenoe925-creator/NTS-PROJECT/pkg/http"
	pkgkafka "github.com/elysenoe925-creator/NTS-PROJECT/pkg/kafka"
	applogger "github.com/elysenoe925-creator/NTS-PROJECT/pkg/logger"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/queue"
)

// Pruner drops idle per-client state, e.g. rate limiter buckets.
type Pruner interface {
	Prune(idle time.Duration) int
}

// Components holds everything App starts and stops. Only HTTP is required.
type Components struct {
	HTTP     *xhttp.Server
	Consumer *pkgkafka.Consumer
	Queue    *queue.RedisQueue
	Limiter  Pruner
	// Closers are closed after every worker has stopped.
	Closers map[string]io.Closer
}

// App encapsulates the entire application lifecycle.
type App struct {
	log             *applogger.Logger
	c               Components
	shutdownTimeout time.Duration
	pruneEvery      time.Duration
}

// New creates a new App instance with all dependencies.
func New(l *applogger.Logger, c Components, shutdownTimeout time.Duration) *App {
	if l == nil {
		l = applogger.NewNop()
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	return &App{log: l, c: c, shutdownTimeout: shutdownTimeout, pruneEvery: time.Minute}
}

// Run starts every component and blocks until ctx ends or SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.c.Queue != nil {
		if err := a.c.Queue.Start(ctx); err != nil {
			a.log.Error("redis queue start error", applogger.Error(err))
			a.closeAll()
			return err
		}
	}

	if a.c.Consumer != nil {
		if err := a.c.Consumer.Start(); err != nil {
			a.log.Error("kafka consumer start error", applogger.Error(err))
			a.stopWorkers(context.Background())
			a.closeAll()
			return err
		}
	}

	if err := a.c.HTTP.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		a.stopWorkers(context.Background())
		a.closeAll()
		return err
	}

	if a.c.Limiter != nil {
		go a.pruneLoop(ctx)
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(a.pruneEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.c.Limiter.Prune(10 * time.Minute); n > 0 {
				a.log.Debug("rate limiter pruned", applogger.Int("keys", n))
			}
		}
	}
}

// shutdown stops intake first (HTTP), then the workers, then the clients.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.c.HTTP.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}
	if err := a.stopWorkers(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	a.closeAll()

	a.log.Info("shutdown complete")
	return firstErr
}

func (a *App) stopWorkers(ctx context.Context) error {
	var firstErr error
	if a.c.Consumer != nil {
		if err := a.c.Consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
			firstErr = err
		}
	}
	if a.c.Queue != nil {
		if err := a.c.Queue.Stop(ctx); err != nil {
			a.log.Warn("redis queue stop error", applogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (a *App) closeAll() {
	for name, cl := range a.c.Closers {
		if cl == nil {
			continue
		}
		if err := cl.Close(); err != nil {
			a.log.Warn("close error", applogger.String("component", name), applogger.Error(err))
		}
	}
}
