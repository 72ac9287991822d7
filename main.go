package main

import (
	"bitwise74/game-clips/app"
	"bitwise74/game-clips/config"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	cfg := config.Load()

	if err := app.SetupLogger(cfg.LogLevel); err != nil {
		panic(err)
	}

	a, err := app.New(cfg)
	if err != nil {
		zap.L().Fatal("Failed to start", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zap.L().Info("Server starting", zap.String("addr", srv.Addr), zap.Bool("ssl", cfg.SSL))

		var err error
		if cfg.SSL {
			err = srv.ListenAndServeTLS(cfg.CertPath, cfg.CertKeyPath)
		} else {
			err = srv.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Failed to shut down server", zap.Error(err))
	}

	if err := a.Close(); err != nil {
		zap.L().Error("Failed to close app", zap.Error(err))
	}

	zap.L().Sync()
}
