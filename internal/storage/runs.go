package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/whatsapp-notebooklm/internal/models"
)

// RecordRun stores a conversion run report
func (c *Client) RecordRun(ctx context.Context, run *models.ConversionRun) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Set created_at if not set
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	err := c.withRetry(ctx, "record_run", func() error {
		_, _, err := c.client.From(runsTable).
			Insert(runRow(run), false, "", "", "").
			Execute()

		if err != nil {
			return fmt.Errorf("failed to insert conversion run: %w", err)
		}

		return nil
	})

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("chat_file", run.ChatFile).
			Msg("Failed to record conversion run")
		return err
	}

	c.logger.Debug().
		Str("chat_file", run.ChatFile).
		Int("files", len(run.Files)).
		Int64("duration_ms", run.DurationMs).
		Msg("Conversion run recorded")

	return nil
}

// RecentRuns returns the latest conversion runs, newest first.
// It calls the get_recent_conversion_runs database function.
func (c *Client) RecentRuns(ctx context.Context, limit int) ([]*models.ConversionRun, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var runs []*models.ConversionRun

	err := c.withRetry(ctx, "recent_runs", func() error {
		data := c.client.Rpc("get_recent_conversion_runs", "", map[string]interface{}{
			"run_limit": limit,
		})

		if data == "" {
			return fmt.Errorf("failed to get recent runs: RPC returned empty")
		}

		return decodeRuns([]byte(data), &runs)
	})

	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("count", len(runs)).
		Msg("Retrieved recent conversion runs")

	return runs, nil
}

func runRow(run *models.ConversionRun) map[string]interface{} {
	return map[string]interface{}{
		"chat_folder":   run.ChatFolder,
		"chat_file":     run.ChatFile,
		"output_folder": run.OutputFolder,
		"months":        run.Months,
		"files":         run.Files,
		"line_count":    run.LineCount,
		"media":         run.Media,
		"duration_ms":   run.DurationMs,
		"error_message": run.ErrorMessage,
		"created_at":    run.CreatedAt,
	}
}

func decodeRuns(data []byte, runs *[]*models.ConversionRun) error {
	if err := json.Unmarshal(data, runs); err != nil {
		return fmt.Errorf("failed to parse conversion runs: %w", err)
	}
	return nil
}
