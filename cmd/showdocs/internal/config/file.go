package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSource loads settings from a file on disk. The extension picks the
// parser (see FormatFromName).
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(ctx context.Context, cfg *Config) error {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", s.Path, ErrNotFound)
		}
		return fmt.Errorf("failed to open config file %s: %w", s.Path, err)
	}
	defer f.Close()

	if err := Parse(FormatFromName(s.Path), f, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", s.Path, err)
	}
	return nil
}

func (s *FileSource) String() string {
	return s.Path
}

// FileName derives the config file name from the executable path: a
// trailing ".exe" is dropped and the base name is cut at its first
// underscore, so "showdocs_Windows.exe" reads "showdocs.ini".
func FileName(executable string) string {
	dir, base := filepath.Split(executable)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".exe") {
		base = strings.TrimSuffix(base, ext)
	}
	if i := strings.IndexByte(base, '_'); i >= 0 {
		base = base[:i]
	}
	return dir + base + ".ini"
}
