package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/menucost/internal/catalog"
	"github.com/Simplici0/menucost/internal/config"
	"github.com/Simplici0/menucost/internal/db"
	"github.com/Simplici0/menucost/internal/logging"
	"github.com/Simplici0/menucost/internal/metrics"
	"github.com/Simplici0/menucost/internal/migrations"
	"github.com/Simplici0/menucost/internal/seed"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      "stderr",
		Development: cfg.IsDev(),
	})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range cfg.Warnings() {
		logger.Warn("configuration incomplete", zap.String("detail", w))
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database.DB, "migrations", logger); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := seed.Run(ctx, database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Currency:      cfg.DefaultCurrency,
		TaxPercent:    cfg.DefaultTaxPercent,
	})
	if err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
	logger.Info("seed finished", zap.Int("inserts", stats.Inserts))

	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
		logger.Warn("using an ephemeral session secret, sessions end on restart")
	}

	store := catalog.New(database, catalog.Options{
		DefaultCurrency:   cfg.DefaultCurrency,
		DefaultTaxPercent: cfg.DefaultTaxPercent,
	})
	srv := newServer(store, newAuthService(secret, !cfg.IsDev()), logger, metrics.New())

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(cfg.MetricsEnabled),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
