package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/db"
	"yatube/internal/pagecache"
	"yatube/internal/router"
	"yatube/internal/services"
	"yatube/pkg/config"
	"yatube/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Yatube server")

	gin.SetMode(cfg.Server.Mode)

	conn, err := db.Open(&cfg.Database, logging.WithComponent("db"))
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := db.Migrate(conn); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	cache, err := pagecache.New(&cfg.Cache, logging.WithComponent("pagecache"))
	if err != nil {
		logger.Fatal("Failed to create page cache", zap.Error(err))
	}
	if closer, ok := cache.(io.Closer); ok {
		defer closer.Close()
	}

	if err := os.MkdirAll(cfg.Media.Root, 0o755); err != nil {
		logger.Fatal("Failed to create media root", zap.String("root", cfg.Media.Root), zap.Error(err))
	}
	svc := services.New(conn, services.NewMediaStore(&cfg.Media))

	engine, err := router.New(router.Options{
		Config:   cfg,
		DB:       conn,
		Services: svc,
		Cache:    cache,
		Logger:   logging.WithComponent("http"),
	})
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}
	engine.MaxMultipartMemory = cfg.Media.MaxUploadBytes + 1<<20

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
