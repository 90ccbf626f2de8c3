package chatexport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoChatFile is returned when the export folder holds no .txt file
var ErrNoChatFile = errors.New("no .txt file found in the chat folder")

// Folder is a chat export directory: one chat text file plus media files
type Folder struct {
	dir string
}

// Open returns the export folder at dir after checking it is a directory
func Open(dir string) (*Folder, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat chat folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("chat folder %s is not a directory", dir)
	}
	return &Folder{dir: dir}, nil
}

// Dir returns the folder path
func (f *Folder) Dir() string {
	return f.dir
}

// FindChatFile returns the name of the largest .txt file in the folder.
// Symlinks are followed.
// Ties go to the first name in sorted order.
func (f *Folder) FindChatFile() (string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return "", fmt.Errorf("read chat folder: %w", err)
	}

	best := ""
	var bestSize int64 = -1
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		info, ok := f.regularFile(entry.Name())
		if !ok {
			continue
		}
		if info.Size() > bestSize {
			best, bestSize = entry.Name(), info.Size()
		}
	}

	if best == "" {
		return "", ErrNoChatFile
	}
	return best, nil
}

// MediaNames lists regular files in the folder other than exclude, sorted
func (f *Folder) MediaNames(exclude string) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("read chat folder: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Name() == exclude {
			continue
		}
		if _, ok := f.regularFile(entry.Name()); !ok {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile reads a whole file from the folder
func (f *Folder) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(f.dir, filepath.Base(name)))
}

// Exists reports whether name is a regular file in the folder.
// Symlinks are followed.
func (f *Folder) Exists(name string) bool {
	_, ok := f.regularFile(filepath.Base(name))
	return ok
}

// regularFile stats name, following symlinks, and reports whether it is a
// regular file
func (f *Folder) regularFile(name string) (os.FileInfo, bool) {
	info, err := os.Stat(filepath.Join(f.dir, name))
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	return info, true
}

// ReadLines reads a text file and splits it into lines without terminators
func (f *Folder) ReadLines(name string) ([]string, error) {
	data, err := f.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read chat file: %w", err)
	}
	return DecodeLines(data), nil
}

// DecodeLines decodes chat text best-effort and splits it into lines.
// A UTF-8 or UTF-16 byte order mark selects the encoding; malformed UTF-8
// sequences are dropped. \r\n and lone \r both end a line.
func DecodeLines(data []byte) []string {
	decoder := unicode.BOMOverride(encoding.Nop.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		decoded = data
	}

	s := strings.ToValidUTF8(string(decoded), "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
