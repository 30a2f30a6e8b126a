package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blogly/internal/config"
	"github.com/blogly/internal/db"
	"github.com/blogly/internal/handler"
	"github.com/blogly/internal/logging"
	"github.com/blogly/internal/router"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := db.Open(db.Options{
		Driver: cfg.DatabaseDriver,
		URL:    cfg.DatabaseURL,
		Path:   cfg.DatabasePath,
		SQLLog: cfg.SQLLog,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("failed to open database")
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := db.Migrate(gdb); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	api := handler.NewAPI(gdb, handler.Options{
		DefaultImageURL: cfg.DefaultImageURL,
		HomePostLimit:   cfg.HomePostLimit,
	})

	// 设置并运行 Gin 服务器
	r, err := router.SetupRouter(api, logger, cfg.SessionSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up router")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Str("driver", cfg.DatabaseDriver).Msg("blogly listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to run server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
