package media

import (
	"fmt"
	"io/fs"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/whatsapp-notebooklm/internal/models"
)

type mapFiles map[string][]byte

// locked.png exists but cannot be read; vanished.png disappears between
// the existence check and the read
func (m mapFiles) Exists(name string) bool {
	_, ok := m[name]
	return ok || name == "locked.png" || name == "vanished.png"
}

func (m mapFiles) ReadFile(name string) ([]byte, error) {
	if name == "locked.png" {
		return nil, fmt.Errorf("open %s: %w", name, fs.ErrPermission)
	}
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
	}
	return data, nil
}

func TestClassify(t *testing.T) {
	tests := map[string]models.MediaKind{
		"IMG-20240314-WA0001.jpg":  models.MediaImage,
		"photo.JPEG":               models.MediaImage,
		"sticker.webp":             models.MediaImage,
		"PTT-20240314-WA0002.opus": models.MediaAudio,
		"song.MP3":                 models.MediaAudio,
		"VID-20240314-WA0003.mp4":  models.MediaVideo,
		"clip.3gp":                 models.MediaVideo,
		"report.pdf":               models.MediaDocument,
		"notes.md":                 models.MediaDocument,
		"other chat.txt":           models.MediaDocument,
		"contact.vcf":              models.MediaUnsupported,
		"archive.tar.gz":           models.MediaUnsupported,
		".nomedia":                 models.MediaUnsupported,
		"README":                   models.MediaUnsupported,
	}

	for name, want := range tests {
		if got := Classify(name); got != want {
			t.Errorf("Classify(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestExt(t *testing.T) {
	tests := map[string]string{
		"a.PNG":     ".png",
		"a.tar.gz":  ".gz",
		".hidden":   "",
		"trailing.": "",
		"none":      "",
	}
	for name, want := range tests {
		if got := Ext(name); got != want {
			t.Errorf("Ext(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestMIMEType(t *testing.T) {
	tests := map[string]string{
		"a.jpg":  "image/jpeg",
		"a.jpeg": "image/jpeg",
		"a.png":  "image/png",
		"a.gif":  "image/gif",
		"a.bmp":  "image/bmp",
		"a.webp": "image/webp",
		"a.heic": "image/jpeg",
	}
	for name, want := range tests {
		if got := MIMEType(name); got != want {
			t.Errorf("MIMEType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestContainmentMatcher_Find(t *testing.T) {
	m := NewContainmentMatcher([]string{"photo.png", "clip.mp4", "a.png", "aa.png", ""})

	refs := m.Find("3/14/2024, 9:05 - Alice: photo.png (file attached) and clip.mp4")
	want := []models.MediaReference{
		{Name: "clip.mp4", Kind: models.MediaVideo},
		{Name: "photo.png", Kind: models.MediaImage},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Errorf("Find = %+v, want %+v", refs, want)
	}

	// Overlapping names both match; resolution happens at substitution time
	refs = m.Find("Bob: aa.png")
	if len(refs) != 2 || refs[0].Name != "a.png" || refs[1].Name != "aa.png" {
		t.Errorf("overlapping Find = %+v", refs)
	}

	if refs := m.Find("nothing here"); len(refs) != 0 {
		t.Errorf("expected no refs, got %+v", refs)
	}
}

func TestEmbedder_Embed(t *testing.T) {
	files := mapFiles{"photo.png": []byte("\x89PNG fake bytes")}
	e := NewEmbedder(files, zerolog.Nop())

	got := e.Embed("photo.png")
	if !got.Available() {
		t.Fatalf("expected embedded image, got status %d", got.Status)
	}
	want := "data:image/png;base64,iVBORyBmYWtlIGJ5dGVz"
	if got.DataURI != want {
		t.Errorf("DataURI = %q, want %q", got.DataURI, want)
	}

	// Same bytes, same URI
	if again := e.Embed("photo.png"); again.DataURI != got.DataURI {
		t.Error("expected byte-identical data URI on re-run")
	}
}

func TestEmbedder_Unavailable(t *testing.T) {
	e := NewEmbedder(mapFiles{}, zerolog.Nop())

	missing := e.Embed("gone.jpg")
	if missing.Status != models.EmbedMissing || missing.DataURI != "" {
		t.Errorf("missing = %+v", missing)
	}

	locked := e.Embed("locked.png")
	if locked.Status != models.EmbedUnreadable || locked.Available() {
		t.Errorf("locked = %+v", locked)
	}
	vanished := e.Embed("vanished.png")
	if vanished.Status != models.EmbedMissing {
		t.Errorf("vanished = %+v", vanished)
	}
}

func TestDataURI(t *testing.T) {
	if got := DataURI("image/gif", []byte("GIF89a")); got != "data:image/gif;base64,R0lGODlh" {
		t.Errorf("DataURI = %q", got)
	}
}
