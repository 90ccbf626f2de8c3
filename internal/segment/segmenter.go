package segment

import (
	"github.com/rs/zerolog"
	"github.com/whatsapp-notebooklm/internal/models"
)

// MonthKeyLayout formats a message date as its bucket key
const MonthKeyLayout = "2006-01"

// Segmenter groups raw chat lines into messages and messages into months
type Segmenter struct {
	patterns []DatePattern
	logger   zerolog.Logger
}

// New creates a segmenter using DefaultPatterns
func New(logger zerolog.Logger) *Segmenter {
	return NewWithPatterns(DefaultPatterns, logger)
}

// NewWithPatterns creates a segmenter that recognizes message starts with
// the given ordered pattern table
func NewWithPatterns(patterns []DatePattern, logger zerolog.Logger) *Segmenter {
	return &Segmenter{
		patterns: patterns,
		logger:   logger.With().Str("component", "segmenter").Logger(),
	}
}

// MonthKey returns the YYYY-MM bucket key for a line that starts a message
func (s *Segmenter) MonthKey(line string) (string, bool) {
	t, ok := parseWith(s.patterns, line)
	if !ok {
		return "", false
	}
	return t.Format(MonthKeyLayout), true
}

// Segment walks lines once and returns the month buckets.
// Lines before the first recognized timestamp are discarded.
func (s *Segmenter) Segment(lines []string) *models.MonthBuckets {
	buckets := models.NewMonthBuckets()

	var (
		currentMonth string
		current      []string
		messages     int
		discarded    int
	)

	for _, line := range lines {
		if key, ok := s.MonthKey(line); ok {
			if current != nil {
				buckets.Append(currentMonth, current...)
			}
			currentMonth = key
			current = []string{line}
			messages++
			continue
		}

		if current == nil {
			discarded++
			continue
		}
		current = append(current, line)
	}

	if current != nil {
		buckets.Append(currentMonth, current...)
	}

	if discarded > 0 {
		s.logger.Debug().
			Int("discarded_lines", discarded).
			Msg("Dropped lines before first timestamp")
	}

	s.logger.Info().
		Int("lines", len(lines)).
		Int("messages", messages).
		Int("months", buckets.Len()).
		Msg("Chat segmented by month")

	return buckets
}
