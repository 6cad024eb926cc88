package config

import (
	"os"
	"sync"
)

var (
	serverOnce   sync.Once
	serverConfig *ServerConfig
)

type ServerConfig struct {
	Addr           string
	LogLevel       string
	JWTSecret      string
	StorageBackend string // "minio" or "s3"
	MaxUploadBytes int64
}

func GetServerConfig() *ServerConfig {
	serverOnce.Do(func() {
		loadEnv()
		serverConfig = &ServerConfig{
			Addr:           envOr("SERVER_ADDR", ":8080"),
			LogLevel:       envOr("LOG_LEVEL", "info"),
			JWTSecret:      os.Getenv("JWT_SECRET"),
			StorageBackend: envOr("STORAGE_BACKEND", "minio"),
			MaxUploadBytes: int64(envIntOr("MAX_UPLOAD_MB", 25)) * 1024 * 1024,
		}
	})
	return serverConfig
}
