package models

import (
	"sort"
	"time"
)

// MediaKind classifies a referenced media file by extension
type MediaKind string

const (
	MediaImage       MediaKind = "image"
	MediaAudio       MediaKind = "audio"
	MediaVideo       MediaKind = "video"
	MediaDocument    MediaKind = "document"
	MediaUnsupported MediaKind = "unsupported"
)

// String returns string representation of MediaKind
func (k MediaKind) String() string {
	return string(k)
}

// MediaReference is a file name found inside a chat line that matches a file
// present in the export folder
type MediaReference struct {
	Name string
	Kind MediaKind
}

// EmbedStatus describes the outcome of embedding an image
type EmbedStatus int

const (
	EmbedOK EmbedStatus = iota
	EmbedMissing
	EmbedUnreadable
)

// ImageEmbed is the result of encoding an image as a data URI.
// When Status is not EmbedOK, DataURI is empty and the image is rendered
// as a placeholder instead.
type ImageEmbed struct {
	Name    string
	MIME    string
	DataURI string
	Status  EmbedStatus
}

// Available reports whether the image bytes were embedded
func (e ImageEmbed) Available() bool {
	return e.Status == EmbedOK
}

// MonthBuckets maps a YYYY-MM key to the raw lines of all messages that
// started in that month. Lines are append-only and kept in stream order.
type MonthBuckets struct {
	order []string
	lines map[string][]string
}

// NewMonthBuckets creates an empty bucket set
func NewMonthBuckets() *MonthBuckets {
	return &MonthBuckets{lines: make(map[string][]string)}
}

// Append adds lines to the bucket for key, creating it on first use
func (b *MonthBuckets) Append(key string, lines ...string) {
	if _, ok := b.lines[key]; !ok {
		b.order = append(b.order, key)
		b.lines[key] = make([]string, 0, len(lines))
	}
	b.lines[key] = append(b.lines[key], lines...)
}

// Lines returns the lines stored for key
func (b *MonthBuckets) Lines(key string) []string {
	return b.lines[key]
}

// Keys returns month keys in the order they were first seen
func (b *MonthBuckets) Keys() []string {
	keys := make([]string, len(b.order))
	copy(keys, b.order)
	return keys
}

// SortedKeys returns month keys in chronological order
func (b *MonthBuckets) SortedKeys() []string {
	keys := b.Keys()
	sort.Strings(keys)
	return keys
}

// Len returns the number of months
func (b *MonthBuckets) Len() int {
	return len(b.order)
}

// LineCount returns the total number of lines across all months
func (b *MonthBuckets) LineCount() int {
	total := 0
	for _, lines := range b.lines {
		total += len(lines)
	}
	return total
}

// MediaCounts tallies media substitutions by kind
type MediaCounts map[MediaKind]int

// Add merges other into c
func (c MediaCounts) Add(other MediaCounts) {
	for kind, n := range other {
		c[kind] += n
	}
}

// Total returns the sum over all kinds
func (c MediaCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// RenderedDocument is one markdown document covering one month
type RenderedDocument struct {
	MonthKey    string
	MonthName   string
	Year        string
	Title       string
	FileName    string
	Body        string
	LineCount   int
	Media       MediaCounts
	Placeholder int // generic "media omitted"/attachment markers normalized
}

// ConverterConfig represents converter configuration
type ConverterConfig struct {
	// Folders
	ChatFolder   string
	OutputFolder string

	// Output naming
	OutputPrefix  string // file name prefix, e.g. WhatsApp_Chat
	DocumentTitle string // heading prefix, e.g. WhatsApp Chat

	// App settings
	Timezone    string
	LogLevel    string
	Environment string
	Schedule    string // cron spec; empty runs once

	// Telegram notification settings (optional)
	TelegramToken  string
	TelegramChatID int64

	// Supabase run history settings (optional)
	SupabaseURL     string
	SupabaseKey     string
	SupabaseTimeout int
}

// NotifyEnabled reports whether run reports should be sent to Telegram
func (c *ConverterConfig) NotifyEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// HistoryEnabled reports whether runs should be recorded in Supabase
func (c *ConverterConfig) HistoryEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// ConversionRun represents the outcome of one conversion run
type ConversionRun struct {
	ID           int64       `json:"id,omitempty"`
	ChatFolder   string      `json:"chat_folder"`
	ChatFile     string      `json:"chat_file"`
	OutputFolder string      `json:"output_folder"`
	Months       []string    `json:"months"`
	Files        []string    `json:"files"`
	LineCount    int         `json:"line_count"`
	Media        MediaCounts `json:"media"`
	DurationMs   int64       `json:"duration_ms"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Succeeded reports whether the run finished without a fatal error
func (r *ConversionRun) Succeeded() bool {
	return r.ErrorMessage == ""
}
