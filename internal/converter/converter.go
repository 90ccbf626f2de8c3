package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/whatsapp-notebooklm/internal/chatexport"
	"github.com/whatsapp-notebooklm/internal/media"
	"github.com/whatsapp-notebooklm/internal/models"
	"github.com/whatsapp-notebooklm/internal/render"
	"github.com/whatsapp-notebooklm/internal/segment"
)

// ErrOutput marks failures to persist converted documents
var ErrOutput = errors.New("cannot write output")

// MatcherFactory builds the media matcher for the files of one export
type MatcherFactory func(names []string) media.Matcher

// Recorder stores the outcome of a run
type Recorder interface {
	RecordRun(ctx context.Context, run *models.ConversionRun) error
}

// Notifier announces the outcome of a run
type Notifier interface {
	NotifyRun(ctx context.Context, run *models.ConversionRun) error
}

// Option configures a Converter
type Option func(*Converter)

// WithMatcher replaces the substring media matcher
func WithMatcher(factory MatcherFactory) Option {
	return func(c *Converter) { c.newMatcher = factory }
}

// WithRecorder stores every run report
func WithRecorder(r Recorder) Option {
	return func(c *Converter) { c.recorder = r }
}

// WithNotifier announces every run report
func WithNotifier(n Notifier) Option {
	return func(c *Converter) { c.notifier = n }
}

// Converter turns a chat export folder into monthly markdown documents.
// Each call to Convert is an independent run with its own state.
type Converter struct {
	config     *models.ConverterConfig
	newMatcher MatcherFactory
	recorder   Recorder
	notifier   Notifier
	base       zerolog.Logger
	logger     zerolog.Logger
}

// New creates a converter
func New(config *models.ConverterConfig, logger zerolog.Logger, opts ...Option) *Converter {
	c := &Converter{
		config: config,
		newMatcher: func(names []string) media.Matcher {
			return media.NewContainmentMatcher(names)
		},
		base:   logger,
		logger: logger.With().Str("component", "converter").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// run holds the state of a single conversion
type run struct {
	folder    *chatexport.Folder
	chatFile  string
	segmenter *segment.Segmenter
	renderer  *render.Renderer
}

// Convert runs one conversion. The returned report is never nil, even when
// the run fails.
func (c *Converter) Convert(ctx context.Context) (*models.ConversionRun, error) {
	startTime := time.Now()

	report := &models.ConversionRun{
		ChatFolder:   c.config.ChatFolder,
		OutputFolder: c.config.OutputFolder,
		Media:        models.MediaCounts{},
		CreatedAt:    startTime.UTC(),
	}

	err := c.convert(ctx, report)
	report.DurationMs = time.Since(startTime).Milliseconds()

	if err != nil {
		report.ErrorMessage = err.Error()
		c.logger.Error().
			Err(err).
			Str("chat_folder", report.ChatFolder).
			Msg("Conversion failed")
	} else {
		c.logger.Info().
			Str("chat_file", report.ChatFile).
			Int("months", len(report.Months)).
			Int("lines", report.LineCount).
			Int("media", report.Media.Total()).
			Int64("duration_ms", report.DurationMs).
			Msg("Conversion completed")
	}

	c.publish(ctx, report)

	return report, err
}

func (c *Converter) convert(ctx context.Context, report *models.ConversionRun) error {
	r, err := c.prepare(report)
	if err != nil {
		return err
	}

	lines, err := r.folder.ReadLines(r.chatFile)
	if err != nil {
		return err
	}

	buckets := r.segmenter.Segment(lines)
	report.LineCount = buckets.LineCount()

	if buckets.Len() == 0 {
		c.logger.Warn().
			Str("chat_file", r.chatFile).
			Msg("No recognizable timestamps found, nothing to write")
		return nil
	}

	if err := os.MkdirAll(c.config.OutputFolder, 0o755); err != nil {
		return fmt.Errorf("%w: create output folder: %w", ErrOutput, err)
	}

	for _, key := range buckets.SortedKeys() {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc := r.renderer.RenderMonth(key, buckets.Lines(key))

		path := filepath.Join(c.config.OutputFolder, doc.FileName)
		if err := os.WriteFile(path, []byte(doc.Body), 0o644); err != nil {
			return fmt.Errorf("%w: write %s: %w", ErrOutput, doc.FileName, err)
		}

		report.Months = append(report.Months, key)
		report.Files = append(report.Files, doc.FileName)
		report.Media.Add(doc.Media)

		c.logger.Info().
			Str("month", key).
			Str("file", path).
			Msg("Created monthly document")
	}

	return nil
}

// prepare locates the chat file and builds the per-run pipeline
func (c *Converter) prepare(report *models.ConversionRun) (*run, error) {
	folder, err := chatexport.Open(c.config.ChatFolder)
	if err != nil {
		return nil, err
	}

	chatFile, err := folder.FindChatFile()
	if err != nil {
		return nil, err
	}
	report.ChatFile = chatFile

	names, err := folder.MediaNames(chatFile)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("chat_file", chatFile).
		Int("media_files", len(names)).
		Msg("Using chat file")

	return &run{
		folder:    folder,
		chatFile:  chatFile,
		segmenter: segment.New(c.base),
		renderer: render.New(
			c.newMatcher(names),
			media.NewEmbedder(folder, c.base),
			c.config.DocumentTitle,
			c.config.OutputPrefix,
			c.base,
		),
	}, nil
}

// publish hands the report to the optional recorder and notifier.
// Their failures never change the outcome of the run.
func (c *Converter) publish(ctx context.Context, report *models.ConversionRun) {
	if c.recorder != nil {
		if err := c.recorder.RecordRun(ctx, report); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to record conversion run")
		}
	}
	if c.notifier != nil {
		if err := c.notifier.NotifyRun(ctx, report); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to send run notification")
		}
	}
}
