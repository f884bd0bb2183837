package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/juanbolano/mini-trello/internal/config"
	"github.com/juanbolano/mini-trello/internal/database"
	"github.com/juanbolano/mini-trello/internal/httpapi"
	"github.com/juanbolano/mini-trello/internal/logging"
	"github.com/juanbolano/mini-trello/internal/remote/local"
)

const defaultListenAddr = ":5000"

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := logging.Console(cfg.LogLevel); err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}

	db, err := database.InitDB(ctx, cfg.DataDir)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	store := local.NewFromRepository(database.NewRepository(db))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	httpapi.Register(e, store, slog.Default())

	listenAddr := defaultListenAddr
	if val, ok := os.LookupEnv("MINITRELLO_HTTP_ADDR"); ok && val != "" {
		listenAddr = val
	}

	go func() {
		slog.Info("minitrello http store starting", "addr", listenAddr, "data_dir", cfg.DataDir)
		if err := e.Start(listenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down http server", "error", err)
	}
	slog.Info("minitrello http store stopped")
}
