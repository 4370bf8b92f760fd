package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron"
	"go.uber.org/zap"

	"github.com/chater-marzougui/two-block-comparaison/src/api"
	"github.com/chater-marzougui/two-block-comparaison/src/config"
	"github.com/chater-marzougui/two-block-comparaison/src/datasource/file"
	"github.com/chater-marzougui/two-block-comparaison/src/storage"
)

func main() {
	cfg, err := config.Load("./config", "config.json")
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer logger.Sync()

	cache := storage.NewCache(cfg.DataDir, cfg.CacheDir, logger)

	// Preload on startup. Not fatal: exports may land later and the watcher
	// picks them up; queries answer 503 until then.
	if _, err := cache.Dataset(); err != nil {
		logger.Warn("initial data load failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reload := func() {
		cache.Invalidate()
		if _, err := cache.Dataset(); err != nil {
			logger.Warn("cache rebuild failed", zap.Error(err))
		}
	}

	monitor, err := file.NewMonitor(cfg.DataDir, time.Duration(cfg.Debounce), logger)
	if err != nil {
		logger.Warn("export directory not watchable", zap.String("dir", cfg.DataDir), zap.Error(err))
	} else {
		go func() {
			if err := monitor.Watch(ctx, reload); err != nil {
				logger.Error("directory monitor stopped", zap.Error(err))
			}
		}()
	}

	if cfg.RefreshSchedule != "" {
		c := cron.New()
		if err := c.AddFunc(cfg.RefreshSchedule, reload); err != nil {
			logger.Error("invalid refresh schedule", zap.String("spec", cfg.RefreshSchedule), zap.Error(err))
		} else {
			c.Start()
			defer c.Stop()
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Mount("/api", api.Routes(api.NewHandler(cache, logger)))

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		logger.Info("analytics server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
