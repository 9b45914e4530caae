package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiryu-dev/board-games/internal/config"
	"github.com/kiryu-dev/board-games/internal/transport/ws"
	"github.com/kiryu-dev/board-games/internal/usecase/game"
	"github.com/kiryu-dev/board-games/internal/usecase/hub"
	"github.com/kiryu-dev/board-games/internal/usecase/reaper"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var errSignal = errors.New("captured signal")

func main() {
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var (
		clients = ws.NewRegistry(logger)
		games   = game.New(clients, logger)
		hub     = hub.New(games, clients, logger)
		reaper  = reaper.New(games, cfg.Session.IdleTimeout, cfg.Session.ReapPeriod, logger)
		server  = ws.New(cfg.Server, games, hub, clients, logger)
	)
	errGroup, ctx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.WithMessagef(errSignal, "%v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(func() error {
		return reaper.Run(ctx)
	})
	errGroup.Go(func() error {
		return server.ListenAndServe()
	})
	errGroup.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Info("failed to shutdown http server: " + err.Error())
		}
		return nil
	})
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the server: " + err.Error())
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.WithMessage(err, "parse log level")
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
