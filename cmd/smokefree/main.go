package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"

	"smokefree/config"
	"smokefree/docs"
	"smokefree/internal/init/cache"
	"smokefree/internal/init/database"
	s3init "smokefree/internal/init/s3"
	"smokefree/pkg/lib/pushsender"
	"smokefree/pkg/lib/pushsender/fcm"
)

type App struct {
	Storage *database.Storage
	Cache   *cache.Cache
	// S3 and Push are nil when the archive or reminders are not configured.
	S3     *s3init.S3Storage
	Push   pushsender.Sender
	Router chi.Router
	Log    *slog.Logger
	Cfg    *config.Config
	Cron   *cron.Cron
	waitFn []func()
}

func NewApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	storage, err := database.NewStorage(cfg.DbConfig, log)
	if err != nil {
		return nil, fmt.Errorf("db init failed: %w", err)
	}

	appCache, err := cache.NewCache(cfg.CacheConfig)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}

	app := &App{
		Storage: storage,
		Cache:   appCache,
		Router:  chi.NewRouter(),
		Log:     log,
		Cfg:     cfg,
		Cron:    cron.New(),
	}

	if cfg.S3Config.Enabled() {
		app.S3, err = s3init.NewS3Storage(cfg.S3Config, log)
		if err != nil {
			return nil, fmt.Errorf("s3 init failed: %w", err)
		}
	} else {
		log.Info("s3 archive bucket not configured, daily log archive disabled")
	}

	if cfg.FCMConfig.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sender, err := fcm.NewFCMSender(ctx, cfg.FCMConfig, log)
		if err != nil {
			return nil, fmt.Errorf("fcm init failed: %w", err)
		}
		app.Push = sender
	} else {
		log.Info("fcm not configured, reminder pushes disabled")
	}

	return app, nil
}

func (app *App) Start() error {
	srv := &http.Server{
		Addr:         app.Cfg.HttpServerConfig.Address,
		Handler:      app.Router,
		ReadTimeout:  app.Cfg.HttpServerConfig.Timeout,
		WriteTimeout: app.Cfg.HttpServerConfig.Timeout,
		IdleTimeout:  app.Cfg.HttpServerConfig.IdleTimeout,
	}

	app.Cron.Start()

	serverShutdown := make(chan error, 1)
	go func() {
		tlsCfg := app.Cfg.HttpServerConfig.TLS
		addr := app.Cfg.HttpServerConfig.Address
		var err error

		if tlsCfg.Enabled {
			for _, f := range []string{tlsCfg.CertFile, tlsCfg.KeyFile} {
				if _, statErr := os.Stat(f); os.IsNotExist(statErr) {
					serverShutdown <- fmt.Errorf("TLS file not found: %s", f)
					return
				}
			}
			app.Log.Info("HTTPS server starting", slog.String("address", addr))
			err = srv.ListenAndServeTLS(tlsCfg.CertFile, tlsCfg.KeyFile)
		} else {
			app.Log.Info("HTTP server starting", slog.String("address", addr))
			err = srv.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverShutdown <- err
			return
		}
		serverShutdown <- nil
	}()

	app.Log.Info(fmt.Sprintf("Swagger docs available at %s://%s/swagger/index.html",
		docs.SwaggerInfo.Schemes[0], docs.SwaggerInfo.Host))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			app.Cron.Stop()
			app.close()
			return fmt.Errorf("server runtime error: %w", err)
		}
	case sig := <-quit:
		app.Log.Info("received OS signal, shutting down", slog.String("signal", sig.String()))
	}

	cronCtx := app.Cron.Stop()
	select {
	case <-cronCtx.Done():
		app.Log.Info("cron scheduler stopped")
	case <-time.After(3 * time.Second):
		app.Log.Warn("cron scheduler stop timed out")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.close()
	app.Log.Info("server stopped gracefully")
	return nil
}

// close waits for in-flight background work and releases connections.
func (app *App) close() {
	for _, wait := range app.waitFn {
		wait()
	}
	if err := app.Cache.Close(); err != nil {
		app.Log.Warn("failed to close redis", "error", err)
	}
	if err := app.Storage.Close(); err != nil {
		app.Log.Warn("failed to close database", "error", err)
	}
}

// @title SmokeFree API
// @version 1.0.0
// @description Settings, daily logs, alarm schedules, statistics and promo validation for the SmokeFree app.
// @BasePath /api
// @Schemes http https
func main() {
	cfg := config.MustLoad()
	log := SetupLogger(cfg.Env)
	slog.SetDefault(log)

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Error("app init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := app.SetupRoutes(); err != nil {
		log.Error("route setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		log.Error("application terminated with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func SetupLogger(env string) *slog.Logger {
	switch strings.ToLower(env) {
	case "prod", "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true}))
	case "local", "dev", "development":
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}))
	default:
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}))
		log.Warn("unknown environment, using debug text logger", slog.String("env", env))
		return log
	}
}
