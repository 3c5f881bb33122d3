package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port        string
	DataDir     string
	StorageSlot string
	DatabaseURL string
	LogLevel    string

	LogoLookup  bool
	LogoTimeout time.Duration

	BackupSchedule string
	BackupDir      string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	BackupEmail  string

	CORSOrigin string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	logoTimeoutMS, err := strconv.Atoi(getEnv("LOGO_TIMEOUT_MS", "1500"))
	if err != nil || logoTimeoutMS <= 0 {
		return nil, fmt.Errorf("LOGO_TIMEOUT_MS must be a positive integer")
	}
	logoLookup, err := strconv.ParseBool(getEnv("LOGO_LOOKUP", "true"))
	if err != nil {
		return nil, fmt.Errorf("LOGO_LOOKUP must be a boolean")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DataDir:        getEnv("DATA_DIR", "data"),
		StorageSlot:    getEnv("STORAGE_SLOT", "cards"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LogoLookup:     logoLookup,
		LogoTimeout:    time.Duration(logoTimeoutMS) * time.Millisecond,
		BackupSchedule: getEnv("BACKUP_SCHEDULE", ""),
		BackupDir:      getEnv("BACKUP_DIR", "backups"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", ""),
		BackupEmail:    getEnv("BACKUP_EMAIL", ""),
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),
	}

	if cfg.StorageSlot == "" {
		return nil, fmt.Errorf("STORAGE_SLOT is required")
	}
	if cfg.BackupEmail != "" && cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when BACKUP_EMAIL is set")
	}
	if cfg.BackupEmail != "" && cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SENDER_EMAIL is required when BACKUP_EMAIL is set")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
