package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	supa "github.com/supabase-community/supabase-go"
)

const runsTable = "conversion_runs"

// Client represents a Supabase storage client for conversion history
type Client struct {
	client  *supa.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// NewClient creates a new Supabase client
func NewClient(supabaseURL, supabaseKey string, timeout int, logger zerolog.Logger) (*Client, error) {
	client, err := supa.NewClient(supabaseURL, supabaseKey, &supa.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		client:  client,
		timeout: time.Duration(timeout) * time.Second,
		logger:  logger.With().Str("component", "storage").Logger(),
	}, nil
}

// Ping checks if the connection to Supabase is working
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.withRetry(ctx, "ping", func() error {
		_, _, err := c.client.From(runsTable).
			Select("id", "exact", false).
			Limit(1, "").
			Execute()
		return err
	})
	if err != nil {
		return fmt.Errorf("supabase ping failed: %w", err)
	}

	c.logger.Debug().Msg("Supabase connection successful")
	return nil
}

// withRetry executes a function with retry logic
func (c *Client) withRetry(ctx context.Context, operation string, fn func() error) error {
	return retry(ctx, c.logger, operation, 2, 500*time.Millisecond, fn)
}

// retry runs fn up to maxRetries+1 times with linear backoff
func retry(ctx context.Context, logger zerolog.Logger, operation string, maxRetries int, step time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * step
			logger.Warn().
				Str("operation", operation).
				Int("attempt", attempt+1).
				Dur("backoff", backoff).
				Msg("Retrying operation")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		logger.Error().
			Err(lastErr).
			Str("operation", operation).
			Int("attempt", attempt+1).
			Msg("Operation failed")
	}

	return fmt.Errorf("operation %s failed after %d attempts: %w", operation, maxRetries+1, lastErr)
}
