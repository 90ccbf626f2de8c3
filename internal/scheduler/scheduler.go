package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/whatsapp-notebooklm/internal/models"
)

// Job is a repeatable conversion
type Job interface {
	Convert(ctx context.Context) (*models.ConversionRun, error)
}

// Scheduler re-runs a conversion on a cron schedule
type Scheduler struct {
	job      Job
	spec     string
	schedule cron.Schedule
	timezone *time.Location
	logger   zerolog.Logger
}

// NewScheduler creates a new scheduler for a standard cron expression or descriptor
func NewScheduler(spec, timezone string, job Job, logger zerolog.Logger) (*Scheduler, error) {
	// Load timezone
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", timezone, err)
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	return &Scheduler{
		job:      job,
		spec:     spec,
		schedule: schedule,
		timezone: loc,
		logger:   logger.With().Str("component", "scheduler").Logger(),
	}, nil
}

// Next returns the next activation after t
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.timezone))
}

// Start runs the job on schedule until ctx is cancelled
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().Msg("Starting scheduler...")

	cl := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithLocation(s.timezone),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() { s.runConversion(ctx) }))

	c.Start()

	next := s.Next(time.Now())
	s.logger.Info().
		Str("schedule", s.spec).
		Time("next_run", next).
		Dur("wait_duration", time.Until(next)).
		Msg("Scheduler started and running")

	// Wait for context cancellation
	<-ctx.Done()
	<-c.Stop().Done()

	s.logger.Info().Msg("Scheduler stopped")
	return ctx.Err()
}

// runConversion executes one scheduled conversion
func (s *Scheduler) runConversion(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	s.logger.Info().Msg("Starting scheduled conversion")

	run, err := s.job.Convert(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("Scheduled conversion failed")
		return
	}

	s.logger.Info().
		Int("files", len(run.Files)).
		Int("lines", run.LineCount).
		Time("next_run", s.Next(time.Now())).
		Msg("Scheduled conversion completed successfully")
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
