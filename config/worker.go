package config

import (
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	workerOnce   sync.Once
	workerConfig *WorkerConfig
)

// WorkerConfig tunes the background worker. Read from config.yaml when
// present so queue weights can change without a rebuild.
type WorkerConfig struct {
	Concurrency      int            `yaml:"concurrency"`
	Queues           map[string]int `yaml:"queues"`
	DispatchCron     string         `yaml:"dispatchCron"`
	CleanupCron      string         `yaml:"cleanupCron"`
	RetentionDays    int            `yaml:"retentionDays"`
	DispatchBatchMax int            `yaml:"dispatchBatchMax"`
}

func GetWorkerConfig() *WorkerConfig {
	workerOnce.Do(func() {
		loadEnv()
		workerConfig = &WorkerConfig{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			DispatchCron:     "@every 5m",
			CleanupCron:      "@every 24h",
			RetentionDays:    30,
			DispatchBatchMax: 100,
		}
		path := envOr("WORKER_CONFIG", "config.yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		if err := yaml.Unmarshal(data, workerConfig); err != nil {
			log.Printf("Warning: invalid worker config %s: %v", path, err)
		}
	})
	return workerConfig
}
