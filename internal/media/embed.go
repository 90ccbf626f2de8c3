package media

import (
	"encoding/base64"
	"errors"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/whatsapp-notebooklm/internal/models"
)

// MediaFiles gives access to the media files of the export folder by name
type MediaFiles interface {
	Exists(name string) bool
	ReadFile(name string) ([]byte, error)
}

// Embedder turns image files into base64 data URIs
type Embedder struct {
	files  MediaFiles
	logger zerolog.Logger
}

// NewEmbedder creates an image embedder reading from files
func NewEmbedder(files MediaFiles, logger zerolog.Logger) *Embedder {
	return &Embedder{
		files:  files,
		logger: logger.With().Str("component", "image_embedder").Logger(),
	}
}

// Embed reads and encodes the named image. Read failures never propagate;
// they are reported through the returned status.
func (e *Embedder) Embed(name string) models.ImageEmbed {
	result := models.ImageEmbed{Name: name, MIME: MIMEType(name)}

	if !e.files.Exists(name) {
		e.logger.Warn().Str("file", name).Msg("Referenced image not found")
		result.Status = models.EmbedMissing
		return result
	}

	data, err := e.files.ReadFile(name)
	if err != nil {
		// Removed between the existence check and the read
		if errors.Is(err, fs.ErrNotExist) {
			e.logger.Warn().Str("file", name).Msg("Referenced image not found")
			result.Status = models.EmbedMissing
			return result
		}
		e.logger.Error().Err(err).Str("file", name).Msg("Failed to read image")
		result.Status = models.EmbedUnreadable
		return result
	}

	result.DataURI = DataURI(result.MIME, data)
	result.Status = models.EmbedOK

	e.logger.Debug().
		Str("file", name).
		Int("bytes", len(data)).
		Msg("Image embedded")

	return result
}

// DataURI encodes data as a base64 data URI of the given MIME type
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
