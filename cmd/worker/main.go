package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	cfg "github.com/relokit/vault/config"
	"github.com/relokit/vault/internal/store"
	"github.com/relokit/vault/pkg/logger"
	"github.com/relokit/vault/pkg/mailer"
	"github.com/relokit/vault/pkg/queue"
	"github.com/relokit/vault/pkg/storage"
	"github.com/relokit/vault/pkg/worker"
)

func main() {
	serverConfig := cfg.GetServerConfig()
	workerConfig := cfg.GetWorkerConfig()

	log, err := logger.NewLogger(
		logger.WithLevel(serverConfig.LogLevel),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/worker.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	st, err := store.NewGormStore(cfg.GetPostgresConfig().DSN())
	if err != nil {
		log.Error("Failed to open store", logger.Error(err))
		os.Exit(1)
	}

	objects, err := storage.NewObjectStore(storage.Backend(serverConfig.StorageBackend), log)
	if err != nil {
		log.Error("Failed to init object storage", logger.Error(err))
		os.Exit(1)
	}

	smtpMailer, err := mailer.NewSMTPMailer(log.Named("mailer"))
	if err != nil {
		log.Error("Failed to create mailer", logger.Error(err))
		os.Exit(1)
	}

	retention := time.Duration(workerConfig.RetentionDays) * 24 * time.Hour
	reminderWorker, err := worker.NewReminderWorker(
		&worker.Config{
			Concurrency: workerConfig.Concurrency,
			Queues:      workerConfig.Queues,
		},
		st, objects, smtpMailer, log.Named("worker"),
		retention, workerConfig.DispatchBatchMax,
	)
	if err != nil {
		log.Error("Failed to create reminder worker", logger.Error(err))
		os.Exit(1)
	}

	scheduler, err := queue.NewScheduler(workerConfig, log.Named("scheduler"))
	if err != nil {
		log.Error("Failed to create scheduler", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := reminderWorker.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		return reminderWorker.Stop()
	})
	g.Go(func() error {
		if err := scheduler.Start(); err != nil {
			return err
		}
		<-gctx.Done()
		scheduler.Shutdown()
		return nil
	})

	log.Info("Worker running")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Worker stopped with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("Worker stopped")
}
