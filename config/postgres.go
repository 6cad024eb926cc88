package config

import (
	"fmt"
	"os"
	"sync"
)

var (
	postgresOnce   sync.Once
	postgresConfig *PostgresConfig
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func GetPostgresConfig() *PostgresConfig {
	postgresOnce.Do(func() {
		loadEnv()
		postgresConfig = &PostgresConfig{
			Host:     envOr("POSTGRES_HOST", "localhost"),
			Port:     envIntOr("POSTGRES_PORT", 5432),
			User:     envOr("POSTGRES_USER", "vault"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Database: envOr("POSTGRES_DB", "vault"),
			SSLMode:  envOr("POSTGRES_SSLMODE", "disable"),
		}
	})
	return postgresConfig
}

// DSN renders the gorm/pgx connection string.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}
