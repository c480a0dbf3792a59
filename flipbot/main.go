package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flipbot/flipbot/app"
	"flipbot/flipbot/config"
	"flipbot/flipbot/middlewares"
	"flipbot/flipbot/routes"
	"flipbot/flipbot/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	logging.InitLogger(cfg.LogDir, true)
	defer logging.Sync()
	if err != nil {
		logging.ErrorLogger.Error("config error", zap.Error(err))
		logging.AppLogger.Fatal("config error", zap.Error(err))
	}

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		logging.AppLogger.Fatal("policy error", zap.String("file", cfg.PolicyFile), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a := app.New(ctx, cfg, policy)
	cancel()
	defer a.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/api", routes.AnalyzeRoutes(a.Analyze, cfg.MaxUploadMB<<20))
	r.Mount("/health", routes.HealthRoutes(a.Health))
	r.Mount("/", routes.StaticRoutes())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.AppLogger.Fatal("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
		return
	}
	logging.AppLogger.Info("server shutdown complete")
}
