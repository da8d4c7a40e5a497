package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration
type Config struct {
	Port         string `toml:"port"`
	DBConn       string `toml:"db_conn"`
	LogLevel     string `toml:"log_level"`
	JWTSecret    string `toml:"jwt_secret"`
	SMTPHost     string `toml:"smtp_host"`
	SMTPPort     string `toml:"smtp_port"`
	SMTPUsername string `toml:"smtp_username"`
	SMTPPassword string `toml:"smtp_password"`
	SenderEmail  string `toml:"sender_email"`
	ReminderSpec string `toml:"reminder_spec"`
	ReminderOn   bool   `toml:"reminder_on"`
}

// NewConfig loads configuration from environment variables, then overlays an
// optional TOML file pointed at by LOANBOARD_CONFIG.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5432 user=loanboard password=loanboard dbname=loanboard sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "loanboard@localhost"),
		ReminderSpec: getEnv("REMINDER_SPEC", "0 8 * * *"),
	}
	cfg.ReminderOn = getEnv("REMINDER_ON", "") == "true"

	if path := os.Getenv("LOANBOARD_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ReminderOn && cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when reminders are enabled")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
