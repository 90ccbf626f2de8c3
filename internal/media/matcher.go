package media

import (
	"sort"
	"strings"

	"github.com/whatsapp-notebooklm/internal/models"
)

// Matcher finds references to known media files inside a chat line
type Matcher interface {
	Find(line string) []models.MediaReference
}

// ContainmentMatcher reports every known file whose name occurs anywhere in
// the line as a plain substring. Names that are substrings of other names
// or of ordinary prose match too.
type ContainmentMatcher struct {
	names []string
}

// NewContainmentMatcher creates a matcher over the given file names.
// Matches are returned in sorted name order.
func NewContainmentMatcher(names []string) *ContainmentMatcher {
	sorted := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			sorted = append(sorted, name)
		}
	}
	sort.Strings(sorted)
	return &ContainmentMatcher{names: sorted}
}

// Find returns all media references in line
func (m *ContainmentMatcher) Find(line string) []models.MediaReference {
	var refs []models.MediaReference
	for _, name := range m.names {
		if strings.Contains(line, name) {
			refs = append(refs, models.MediaReference{Name: name, Kind: Classify(name)})
		}
	}
	return refs
}
