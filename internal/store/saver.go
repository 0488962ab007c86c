// Package store persists generated schema documents to disk.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wvassist/internal/wizyvision"
)

// Saver writes schema documents under a base directory, creating it on
// demand. The zero value writes to the current directory.
type Saver struct {
	// Dir is the output directory. Empty means ".".
	Dir string

	// now is swappable for tests.
	now func() time.Time
}

// NewSaver returns a Saver rooted at dir.
func NewSaver(dir string) *Saver {
	return &Saver{Dir: dir, now: time.Now}
}

// DefaultFilename returns a timestamped name of the form
// app_schema_20060102_150405.json.
func (s *Saver) DefaultFilename() string {
	clock := s.now
	if clock == nil {
		clock = time.Now
	}
	return fmt.Sprintf("app_schema_%s.json", clock().Format("20060102_150405"))
}

// Save writes doc as indented JSON to filename inside the saver's
// directory and returns the full path. An empty filename uses the
// timestamped default; a missing .json suffix is appended.
func (s *Saver) Save(doc wizyvision.Document, filename string) (string, error) {
	if filename == "" {
		filename = s.DefaultFilename()
	}
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := doc.MarshalIndent()
	if err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing schema: %w", err)
	}
	return path, nil
}
