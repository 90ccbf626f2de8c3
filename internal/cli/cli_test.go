package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/whatsapp-notebooklm/internal/models"
)

var envKeys = []string{
	"CHAT_FOLDER", "OUTPUT_FOLDER", "OUTPUT_PREFIX", "DOCUMENT_TITLE",
	"LOG_LEVEL", "ENVIRONMENT", "TIMEZONE", "SCHEDULE",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
	"SUPABASE_URL", "SUPABASE_KEY", "SUPABASE_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	color.NoColor = true
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "whatsapp2notebook version 0.1.0\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := NewRootCommand()
	if err := cmd.ParseFlags([]string{"--input", `"/exports/chat"`, "--prefix", "Family", "--log-level", "debug"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg := &models.ConverterConfig{
		OutputFolder:    "/env/out",
		OutputPrefix:    "WhatsApp_Chat",
		DocumentTitle:   "WhatsApp Chat",
		Timezone:        "UTC",
		LogLevel:        "info",
		SupabaseTimeout: 10,
	}

	// The options behind the flags are bound inside NewRootCommand, so
	// rebuild them from the parsed flag set.
	opts := &rootOptions{}
	opts.input, _ = cmd.Flags().GetString("input")
	opts.prefix, _ = cmd.Flags().GetString("prefix")
	opts.logLevel, _ = cmd.Flags().GetString("log-level")

	if err := applyFlags(cfg, opts, cmd.Flags()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ChatFolder != "/exports/chat" {
		t.Errorf("ChatFolder = %q, want quotes stripped", cfg.ChatFolder)
	}
	if cfg.OutputFolder != "/env/out" {
		t.Errorf("OutputFolder = %q, unset flag should keep env value", cfg.OutputFolder)
	}
	if cfg.OutputPrefix != "Family" || cfg.LogLevel != "debug" {
		t.Errorf("prefix=%q level=%q", cfg.OutputPrefix, cfg.LogLevel)
	}
	if cfg.DocumentTitle != "WhatsApp Chat" {
		t.Errorf("DocumentTitle = %q, unset flag should keep default", cfg.DocumentTitle)
	}
}

func TestApplyFlagsValidates(t *testing.T) {
	cmd := NewRootCommand()
	if err := cmd.ParseFlags([]string{"--log-level", "loud"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg := &models.ConverterConfig{
		OutputPrefix:    "p",
		DocumentTitle:   "t",
		Timezone:        "UTC",
		SupabaseTimeout: 10,
	}
	if err := applyFlags(cfg, &rootOptions{logLevel: "loud"}, cmd.Flags()); err == nil {
		t.Error("expected validation error for unknown log level")
	}
}

func TestResolveFoldersNonInteractive(t *testing.T) {
	var out bytes.Buffer

	cfg := &models.ConverterConfig{ChatFolder: "/in"}
	err := resolveFolders(cfg, &out, false)
	if !errors.Is(err, ErrFoldersRequired) {
		t.Errorf("expected ErrFoldersRequired, got %v", err)
	}

	cfg = &models.ConverterConfig{ChatFolder: "/in", OutputFolder: "/out"}
	if err := resolveFolders(cfg, &out, false); err != nil {
		t.Errorf("both folders set should not prompt: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}

func TestRootCommandConverts(t *testing.T) {
	clearEnv(t)

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "notebook")
	chat := "3/15/24, 10:00 - Alice: Hi\n4/01/24, 09:00 - Bob: Hello\n"
	if err := os.WriteFile(filepath.Join(in, "chat.txt"), []byte(chat), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--input", in, "--output", out, "--prefix", "Family", "--log-level", "error"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, stdout.String())
	}

	for _, name := range []string{"Family_March_2024.md", "Family_April_2024.md"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if !strings.Contains(stdout.String(), "Created 2 markdown files") {
		t.Errorf("missing success report:\n%s", stdout.String())
	}
}

func TestRootCommandFailsWithoutChatFile(t *testing.T) {
	clearEnv(t)

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "notebook")

	var stdout bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-i", in, "-o", out, "--log-level", "error"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(stdout.String(), "Please check:") {
		t.Errorf("missing failure diagnostic:\n%s", stdout.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output folder should not be created")
	}
}

func TestRootCommandRejectsBadSchedule(t *testing.T) {
	clearEnv(t)

	in := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "chat.txt"), []byte("3/15/24, 10:00 - A: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "notebook")

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-i", in, "-o", out, "--schedule", "sometimes", "--log-level", "error"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected schedule error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("nothing should be converted with an invalid schedule")
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger("warn", "production", &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	got := buf.String()
	if strings.Contains(got, "hidden") || !strings.Contains(got, `"message":"shown"`) {
		t.Errorf("unexpected log output: %q", got)
	}

	if lvl := setupLogger("nonsense", "production", &buf).GetLevel(); lvl != zerolog.InfoLevel {
		t.Errorf("invalid level should fall back to info, got %v", lvl)
	}
}

func TestHistoryCommandErrors(t *testing.T) {
	clearEnv(t)

	var printed bytes.Buffer
	saved := color.Output
	color.Output = &printed
	t.Cleanup(func() { color.Output = saved })

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{"zero limit", []string{"history", "-n", "0"}, ErrInvalidLimit, "limit must be positive, got 0"},
		{"negative limit", []string{"history", "--limit", "-3"}, ErrInvalidLimit, "limit must be positive, got -3"},
		{"history disabled", []string{"history"}, ErrHistoryDisabled, "SUPABASE_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			printed.Reset()

			cmd := NewRootCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(printed.String(), tt.wantMsg) {
				t.Errorf("expected printed error containing %q, got %q", tt.wantMsg, printed.String())
			}
		})
	}
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil)
	if !strings.Contains(buf.String(), "No conversion runs") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	printHistory(&buf, []*models.ConversionRun{
		{ChatFile: "chat.txt", Files: []string{"a.md"}, LineCount: 5, CreatedAt: time.Now()},
		{ChatFile: "old.txt", ErrorMessage: "no chat file", CreatedAt: time.Now()},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "1 files") || !strings.HasSuffix(lines[0], "ok") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "failed: no chat file") {
		t.Errorf("line 1 = %q", lines[1])
	}
}
