package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/whatsapp-notebooklm/internal/models"
)

// TargetName is the document tool the output is prepared for
const TargetName = "NotebookLM"

// placeholderRule rewrites a generic media marker left by the chat export
type placeholderRule struct {
	re   *regexp.Regexp
	repl string
}

// Applied after per-file substitution, so only unresolved markers remain.
var placeholderRules = []placeholderRule{
	{regexp.MustCompile(`(?i)<Media omitted>`), "**[Media content omitted]**"},
	{regexp.MustCompile(`(?i)\[Media omitted\]`), "**[Media content omitted]**"},
	{regexp.MustCompile(`(?i)<attached: (.+?)>`), "**[Attachment: ${1}]**"},
	{regexp.MustCompile(`(?i)\(file attached\)`), "**[File attached]**"},
}

var proseEscaper = strings.NewReplacer(`*`, `\*`, `_`, `\_`, `#`, `\#`)

// EscapeProse escapes characters that would otherwise turn plain chat text
// into markdown emphasis or headings
func EscapeProse(s string) string {
	return proseEscaper.Replace(s)
}

// normalizePlaceholders rewrites generic media markers and returns the
// number of markers replaced
func normalizePlaceholders(s string) (string, int) {
	count := 0
	for _, rule := range placeholderRules {
		matches := rule.re.FindAllStringIndex(s, -1)
		if len(matches) == 0 {
			continue
		}
		count += len(matches)
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	return s, count
}

// imageMarkdown renders an embedded image, or a placeholder when the image
// could not be read
func imageMarkdown(img models.ImageEmbed) string {
	var md string
	switch img.Status {
	case models.EmbedOK:
		md = fmt.Sprintf("![%s](%s)", img.Name, img.DataURI)
	case models.EmbedMissing:
		md = fmt.Sprintf("![Image not found: %s]", img.Name)
	default:
		md = fmt.Sprintf("![Error loading image: %s]", img.Name)
	}
	return fmt.Sprintf("\n\n%s\n\n*Image: %s*\n", md, img.Name)
}

func avNotice(name string, kind models.MediaKind) string {
	label := "Video"
	if kind == models.MediaAudio {
		label = "Audio"
	}
	return fmt.Sprintf("\n\n**📹 %s content sent: %s**\n*(%s content not uploaded to %s)*\n", label, name, label, TargetName)
}

func documentNotice(name string) string {
	return fmt.Sprintf("\n\n**📄 Document sent: %s**\n*(Document content not uploaded to %s)*\n", name, TargetName)
}

func unsupportedNotice(name string) string {
	return fmt.Sprintf("\n\n**File: %s (unsupported format for %s)**\n", name, TargetName)
}
