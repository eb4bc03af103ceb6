package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"civicreport-backend-go/internal/config"
	"civicreport-backend-go/internal/db"
	httpapi "civicreport-backend-go/internal/http"
	"civicreport-backend-go/internal/logging"
	"civicreport-backend-go/internal/migrations"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logFile, err := logging.NewDailyFile(cfg.LogDir, cfg.LogRetentionDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file setup failed: %v\n", err)
	}
	logger := logging.New(cfg, logFile)
	defer func() {
		_ = logger.Sync()
		if logFile != nil {
			_ = logFile.Close()
		}
	}()

	database, err := db.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	applied, err := migrations.Apply(ctx, database, cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	for _, name := range applied {
		logger.Info("migration applied", zap.String("name", name))
	}

	server := httpapi.NewServer(database, cfg, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
