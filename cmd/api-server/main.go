package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickbids/db"
	"quickbids/db/migrations"
	"quickbids/internal/auth"
	"quickbids/internal/config"
	"quickbids/internal/handlers"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("starting quickbids",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.DatabaseDriver),
	)

	ctx := context.Background()

	conn, err := db.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("cannot connect to database", slog.Any("err", err))
		os.Exit(1)
	}
	defer conn.Close()

	if cfg.AutoMigrate {
		if err := migrations.Run(ctx, conn.DB, cfg.DatabaseDriver, logger); err != nil {
			logger.Error("migrations failed", slog.Any("err", err))
			os.Exit(1)
		}
	}

	h := handlers.NewHandler(
		db.NewStorage(conn),
		auth.NewBcryptHasher(cfg.BcryptCost),
		auth.NewJWTService(cfg.JWTSecret, cfg.TokenDuration),
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h.Routes(cfg.APITimeout),
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("err", err))
	}
	logger.Info("server exited")
}
