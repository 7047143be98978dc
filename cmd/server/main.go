package main

import (
	"context"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/junealder/eventide/internal/config"
	"github.com/junealder/eventide/internal/keyspace"
	"github.com/junealder/eventide/internal/logger"
	"github.com/junealder/eventide/internal/server"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync() //nolint:errcheck

	log.Info("Eventide starting", zap.String("port", cfg.Server.Port))

	ks := keyspace.New()
	engine := server.NewEngine(ks, log)
	srv := server.NewServer(engine, log)

	address := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	if err := srv.Listen(address); err != nil {
		log.Error("listener error", zap.Error(err))
		return
	}
	log.Info("listening on", zap.String("address", address))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go srv.Serve()

	<-ctx.Done()

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("Shutdown timed out, forcing exit", zap.Duration("timeout", shutdownTimeout))
	} else {
		log.Info("All connections closed gracefully")
	}

	log.Info("Eventide stopped")
}
