package render

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/whatsapp-notebooklm/internal/media"
	"github.com/whatsapp-notebooklm/internal/models"
)

// ImageEmbedder encodes an image file for inline display
type ImageEmbedder interface {
	Embed(name string) models.ImageEmbed
}

// Renderer turns month buckets into markdown documents
type Renderer struct {
	matcher  media.Matcher
	embedder ImageEmbedder
	title    string
	prefix   string
	logger   zerolog.Logger
}

// New creates a renderer. title heads every document and prefix starts
// every output file name.
func New(matcher media.Matcher, embedder ImageEmbedder, title, prefix string, logger zerolog.Logger) *Renderer {
	return &Renderer{
		matcher:  matcher,
		embedder: embedder,
		title:    title,
		prefix:   prefix,
		logger:   logger.With().Str("component", "renderer").Logger(),
	}
}

// LineResult is the rendered form of one chat line
type LineResult struct {
	Text         string
	Skipped      bool // blank line, contributes nothing
	Altered      bool // media or placeholder markup was inserted
	Media        models.MediaCounts
	Placeholders int
}

// RenderLine resolves media references and generic markers in one line.
// Lines without inserted markup have markdown characters escaped.
func (r *Renderer) RenderLine(raw string) LineResult {
	line := strings.TrimSpace(raw)
	if line == "" {
		return LineResult{Skipped: true}
	}

	result := LineResult{Media: models.MediaCounts{}}
	processed := r.substituteMedia(line, result.Media)
	processed, result.Placeholders = normalizePlaceholders(processed)

	if processed != line {
		result.Text = processed
		result.Altered = true
		return result
	}

	result.Text = EscapeProse(processed)
	return result
}

// substituteMedia replaces every referenced file name with its markdown.
// The line is scanned once from left to right; at each position the
// longest name starting there wins and the scan resumes after it, so a
// name contained in another name (a.png in aa.png) never rewrites the
// longer one and inserted markup is never rescanned. Only names actually
// written are counted.
func (r *Renderer) substituteMedia(line string, counts models.MediaCounts) string {
	refs := r.matcher.Find(line)
	if len(refs) == 0 {
		return line
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return len(refs[i].Name) > len(refs[j].Name)
	})

	var sb strings.Builder
	written := make(map[string]string, len(refs))

	for i := 0; i < len(line); {
		ref, ok := longestAt(line[i:], refs)
		if !ok {
			sb.WriteByte(line[i])
			i++
			continue
		}

		md, seen := written[ref.Name]
		if !seen {
			md = r.replacement(ref)
			written[ref.Name] = md
			counts[ref.Kind]++
		}
		sb.WriteString(md)
		i += len(ref.Name)
	}

	return sb.String()
}

// longestAt returns the first ref in refs whose name prefixes s.
// refs must be ordered longest name first.
func longestAt(s string, refs []models.MediaReference) (models.MediaReference, bool) {
	for _, ref := range refs {
		if ref.Name != "" && strings.HasPrefix(s, ref.Name) {
			return ref, true
		}
	}
	return models.MediaReference{}, false
}

func (r *Renderer) replacement(ref models.MediaReference) string {
	switch ref.Kind {
	case models.MediaImage:
		return imageMarkdown(r.embedder.Embed(ref.Name))
	case models.MediaAudio, models.MediaVideo:
		return avNotice(ref.Name, ref.Kind)
	case models.MediaDocument:
		return documentNotice(ref.Name)
	default:
		return unsupportedNotice(ref.Name)
	}
}

// RenderMonth builds the document for one month bucket
func (r *Renderer) RenderMonth(key string, lines []string) models.RenderedDocument {
	year, monthName := SplitMonthKey(key)

	doc := models.RenderedDocument{
		MonthKey:  key,
		MonthName: monthName,
		Year:      year,
		Title:     r.title + " - " + monthName + " " + year,
		FileName:  FileName(r.prefix, key, "md"),
		Media:     models.MediaCounts{},
	}

	var sb strings.Builder
	writeHeader(&sb, doc.Title, monthName, year)

	for _, raw := range lines {
		res := r.RenderLine(raw)
		if res.Skipped {
			continue
		}
		sb.WriteString(res.Text)
		sb.WriteString("\n\n")

		doc.LineCount++
		doc.Media.Add(res.Media)
		doc.Placeholder += res.Placeholders
	}

	doc.Body = sb.String()

	r.logger.Info().
		Str("month", key).
		Str("file", doc.FileName).
		Int("lines", doc.LineCount).
		Int("media", doc.Media.Total()).
		Int("placeholders", doc.Placeholder).
		Msg("Month rendered")

	return doc
}
