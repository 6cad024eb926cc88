package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/relokit/vault/api/handlers"
	"github.com/relokit/vault/api/routes"
	cfg "github.com/relokit/vault/config"
	"github.com/relokit/vault/internal/service/document"
	"github.com/relokit/vault/internal/service/export"
	"github.com/relokit/vault/internal/service/municipality"
	"github.com/relokit/vault/internal/service/reminder"
	"github.com/relokit/vault/internal/store"
	"github.com/relokit/vault/pkg/logger"
	"github.com/relokit/vault/pkg/storage"
)

func main() {
	serverConfig := cfg.GetServerConfig()

	// init logger
	log, err := logger.NewLogger(
		logger.WithLevel(serverConfig.LogLevel),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/app.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// persistence
	st, err := store.NewGormStore(cfg.GetPostgresConfig().DSN())
	if err != nil {
		log.Fatal("Failed to open store", logger.Error(err))
	}

	objects, err := storage.NewObjectStore(storage.Backend(serverConfig.StorageBackend), log)
	if err != nil {
		log.Fatal("Failed to init object storage", logger.Error(err))
	}

	redisConfig := cfg.GetRedisConfig()
	cache := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	// services
	docService := document.NewService(st, objects, log, &document.Config{
		MaxFileSize:  serverConfig.MaxUploadBytes,
		AllowedTypes: []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"},
	})
	exportService := export.NewService(st, objects, log.Named("export"))
	scheduler := reminder.NewScheduler(st, log.Named("reminder"))
	actions := reminder.NewActions(st)
	municipalities := municipality.NewService(st, cache, log.Named("municipality"))

	// handlers + router
	h := handlers.NewHandlers(docService, exportService, scheduler, actions, st, municipalities, log)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, h, []byte(serverConfig.JWTSecret))

	srv := &http.Server{
		Addr:    serverConfig.Addr,
		Handler: r,
	}

	// start server
	go func() {
		log.Info("Server starting", logger.String("addr", serverConfig.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", logger.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", logger.Error(err))
	}
}
