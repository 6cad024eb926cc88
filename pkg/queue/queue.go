// Package queue defines the background task types and the periodic
// scheduler that enqueues them.
package queue

import (
	"fmt"

	"github.com/hibiken/asynq"

	cfg "github.com/relokit/vault/config"
	"github.com/relokit/vault/pkg/logger"
)

// Task types handled by the worker.
const (
	TaskTypeReminderDispatch = "reminder:dispatch"
	TaskTypeStorageCleanup   = "storage:cleanup"
)

// RedisConnOpt builds the asynq connection options from config.
func RedisConnOpt() asynq.RedisClientOpt {
	redisConfig := cfg.GetRedisConfig()
	return asynq.RedisClientOpt{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	}
}

// NewScheduler wires the periodic entries: reminder dispatch on a short
// cadence, storage cleanup daily. Cron specs come from the worker config so
// operators can retune without a rebuild.
func NewScheduler(workerCfg *cfg.WorkerConfig, log logger.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(RedisConnOpt(), &asynq.SchedulerOpts{})

	if _, err := scheduler.Register(
		workerCfg.DispatchCron,
		asynq.NewTask(TaskTypeReminderDispatch, nil),
		asynq.Queue("critical"),
	); err != nil {
		return nil, fmt.Errorf("register dispatch entry: %w", err)
	}

	if _, err := scheduler.Register(
		workerCfg.CleanupCron,
		asynq.NewTask(TaskTypeStorageCleanup, nil),
		asynq.Queue("low"),
	); err != nil {
		return nil, fmt.Errorf("register cleanup entry: %w", err)
	}

	log.Info("Scheduler configured",
		logger.String("dispatchCron", workerCfg.DispatchCron),
		logger.String("cleanupCron", workerCfg.CleanupCron),
	)
	return scheduler, nil
}
