package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/whatsapp-notebooklm/internal/models"
)

const (
	DefaultOutputPrefix  = "WhatsApp_Chat"
	DefaultDocumentTitle = "WhatsApp Chat"
)

// Load loads configuration from environment variables
// It first attempts to load from .env file, then reads environment variables
func Load() (*models.ConverterConfig, error) {
	// Try to load .env file (optional, ignore error if not found)
	_ = godotenv.Load()

	config := &models.ConverterConfig{
		// Folders
		ChatFolder:   getEnv("CHAT_FOLDER", ""),
		OutputFolder: getEnv("OUTPUT_FOLDER", ""),

		// Output naming
		OutputPrefix:  getEnv("OUTPUT_PREFIX", DefaultOutputPrefix),
		DocumentTitle: getEnv("DOCUMENT_TITLE", DefaultDocumentTitle),

		// App settings
		Timezone:    getEnv("TIMEZONE", "UTC"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "production"),
		Schedule:    getEnv("SCHEDULE", ""),

		// Telegram settings
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvInt64("TELEGRAM_CHAT_ID", 0),

		// Supabase settings
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseTimeout: getEnvInt("SUPABASE_TIMEOUT", 10),
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks that configuration values are consistent.
// Folders are not required here; the CLI may still prompt for them.
func Validate(cfg *models.ConverterConfig) error {
	if cfg.OutputPrefix == "" {
		return fmt.Errorf("OUTPUT_PREFIX must not be empty")
	}
	if cfg.DocumentTitle == "" {
		return fmt.Errorf("DOCUMENT_TITLE must not be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %s", cfg.LogLevel)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", cfg.Timezone, err)
	}

	if (cfg.TelegramToken == "") != (cfg.TelegramChatID == 0) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	if (cfg.SupabaseURL == "") != (cfg.SupabaseKey == "") {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY must be set together")
	}
	if cfg.SupabaseTimeout <= 0 {
		return fmt.Errorf("SUPABASE_TIMEOUT must be positive, got %d", cfg.SupabaseTimeout)
	}

	return nil
}

// getEnv retrieves environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves environment variable as integer or returns default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvInt64 retrieves environment variable as int64 or returns default value
func getEnvInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
