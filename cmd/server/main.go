package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/diewo77/orcafacil/internal/backend"
	"github.com/diewo77/orcafacil/internal/config"
	"github.com/diewo77/orcafacil/internal/db"
	"github.com/diewo77/orcafacil/internal/models"
	"github.com/diewo77/orcafacil/internal/probe"
	"github.com/diewo77/orcafacil/internal/server"
	"github.com/diewo77/orcafacil/internal/settings"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Env == "development" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	store := settings.NewFileStore(cfg.SettingsPath)
	handle := backend.New(store, cfg.DatabaseDSN)

	if *migrateOnlyFlag {
		if _, err := handle.DB(); err != nil {
			logrus.WithError(err).Fatal("migrate-only failed")
		}
		logrus.Info("migrations completed; exiting as requested")
		return
	}

	// The probe's lightweight read: one orcamentos id, zero rows is fine.
	prober := probe.New(store, func() error {
		conn, err := handle.DB()
		if err != nil {
			return err
		}
		var ids []uint
		return conn.Model(&models.Orcamento{}).Limit(1).Pluck("id", &ids).Error
	}, cfg.ProbeInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go prober.Run(ctx)

	if dsn := cfg.DatabaseDSN; dsn != "" {
		logrus.WithField("dsn", db.MaskDSN(dsn)).Debug("fallback DSN configured")
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(handle, store, prober)}
	go func() {
		logrus.WithFields(logrus.Fields{"env": cfg.Env, "addr": srv.Addr}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during shutdown")
		os.Exit(1)
	}
	logrus.Info("server gracefully stopped")
}
