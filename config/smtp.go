package config

import (
	"os"
	"sync"
)

var (
	smtpOnce   sync.Once
	smtpConfig *SMTPConfig
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func GetSMTPConfig() *SMTPConfig {
	smtpOnce.Do(func() {
		loadEnv()
		smtpConfig = &SMTPConfig{
			Host:     envOr("SMTP_HOST", "localhost"),
			Port:     envIntOr("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envOr("SMTP_FROM", "reminders@relokit.app"),
		}
	})
	return smtpConfig
}
