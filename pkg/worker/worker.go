package worker

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/relokit/vault/pkg/logger"
)

type Worker interface {
	Start(ctx context.Context) error
	Stop() error
}

type Config struct {
	Concurrency int
	Queues      map[string]int
}

type BaseWorker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	logger   logger.Logger
	stopOnce sync.Once
}

// Stop is safe to call more than once; context cancellation and an explicit
// shutdown path can race.
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.server.Stop()
		w.server.Shutdown()
	})
	return nil
}
