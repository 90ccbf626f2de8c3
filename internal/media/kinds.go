package media

import (
	"path/filepath"
	"strings"

	"github.com/whatsapp-notebooklm/internal/models"
)

// Image formats embedded inline as base64, with their MIME types
var imageMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// DefaultImageMIME is used when an image extension has no mapping
const DefaultImageMIME = "image/jpeg"

var audioExtensions = map[string]bool{
	".aac": true, ".aif": true, ".aifc": true, ".aiff": true, ".amr": true,
	".au": true, ".cda": true, ".m4a": true, ".mid": true, ".mp3": true,
	".ogg": true, ".opus": true, ".ra": true, ".ram": true, ".snd": true,
	".wav": true, ".wma": true,
}

var videoExtensions = map[string]bool{
	".3g2": true, ".3gp": true, ".avi": true, ".mp4": true, ".mpeg": true,
}

var documentExtensions = map[string]bool{
	".pdf": true, ".txt": true, ".md": true,
}

// Ext returns the lower-cased extension of name including the dot.
// Dotfiles such as ".nomedia" and names ending in a dot have no extension.
func Ext(name string) string {
	base := filepath.Base(name)
	i := strings.LastIndex(base, ".")
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i:])
}

// Classify returns the media kind for a file name
func Classify(name string) models.MediaKind {
	ext := Ext(name)
	switch {
	case imageMIME[ext] != "":
		return models.MediaImage
	case audioExtensions[ext]:
		return models.MediaAudio
	case videoExtensions[ext]:
		return models.MediaVideo
	case documentExtensions[ext]:
		return models.MediaDocument
	default:
		return models.MediaUnsupported
	}
}

// MIMEType returns the image MIME type for name
func MIMEType(name string) string {
	if mime, ok := imageMIME[Ext(name)]; ok {
		return mime
	}
	return DefaultImageMIME
}
