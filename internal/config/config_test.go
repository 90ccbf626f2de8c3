package config

import (
	"strings"
	"testing"
)

var configKeys = []string{
	"CHAT_FOLDER", "OUTPUT_FOLDER", "OUTPUT_PREFIX", "DOCUMENT_TITLE",
	"TIMEZONE", "LOG_LEVEL", "ENVIRONMENT", "SCHEDULE",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
	"SUPABASE_URL", "SUPABASE_KEY", "SUPABASE_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	// Set keys (even empty) are never overridden by a .env file
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputPrefix != "WhatsApp_Chat" {
		t.Errorf("expected default prefix, got %s", cfg.OutputPrefix)
	}
	if cfg.DocumentTitle != "WhatsApp Chat" {
		t.Errorf("expected default title, got %s", cfg.DocumentTitle)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected production environment, got %s", cfg.Environment)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("expected UTC timezone, got %s", cfg.Timezone)
	}
	if cfg.SupabaseTimeout != 10 {
		t.Errorf("expected default supabase timeout 10, got %d", cfg.SupabaseTimeout)
	}
	if cfg.NotifyEnabled() || cfg.HistoryEnabled() {
		t.Error("expected notifications and history to be disabled by default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAT_FOLDER", "/data/export")
	t.Setenv("OUTPUT_FOLDER", "/data/out")
	t.Setenv("OUTPUT_PREFIX", "Family")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SCHEDULE", "0 3 * * *")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_KEY", "service-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ChatFolder != "/data/export" || cfg.OutputFolder != "/data/out" {
		t.Errorf("folders = %q, %q", cfg.ChatFolder, cfg.OutputFolder)
	}
	if cfg.OutputPrefix != "Family" {
		t.Errorf("expected prefix Family, got %s", cfg.OutputPrefix)
	}
	if cfg.Schedule != "0 3 * * *" {
		t.Errorf("expected schedule, got %q", cfg.Schedule)
	}
	if cfg.TelegramChatID != -100200 {
		t.Errorf("expected chat id -100200, got %d", cfg.TelegramChatID)
	}
	if !cfg.NotifyEnabled() {
		t.Error("expected notifications enabled")
	}
	if !cfg.HistoryEnabled() {
		t.Error("expected history enabled")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}, "TIMEZONE"},
		{"telegram half set", map[string]string{"TELEGRAM_BOT_TOKEN": "123:abc"}, "TELEGRAM_BOT_TOKEN"},
		{"supabase half set", map[string]string{"SUPABASE_URL": "https://x.supabase.co"}, "SUPABASE_URL"},
		{"supabase timeout", map[string]string{"SUPABASE_TIMEOUT": "-1"}, "SUPABASE_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_TIMEOUT", "soon")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SupabaseTimeout != 10 {
		t.Errorf("expected default timeout on invalid value, got %d", cfg.SupabaseTimeout)
	}
}
