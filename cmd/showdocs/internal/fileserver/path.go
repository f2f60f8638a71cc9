package fileserver

import (
	"os"
	"path/filepath"
	"strings"
)

// MaxPathLen caps resolved paths; longer results are truncated to
// MaxPathLen-1 bytes.
const MaxPathLen = 512

// Resolve joins root and rel. A separator is inserted only when root does
// not already end in one. The result is not cleaned and may point outside
// root when rel contains "..".
func Resolve(root, rel string) string {
	var full string
	switch {
	case root == "":
		full = rel
	case strings.HasSuffix(root, string(filepath.Separator)) || strings.HasSuffix(root, "/"):
		full = root + rel
	default:
		full = root + string(filepath.Separator) + rel
	}

	if len(full) > MaxPathLen-1 {
		full = full[:MaxPathLen-1]
	}
	return full
}

// Contained reports whether rel stays below the root it is joined to.
func Contained(rel string) bool {
	return filepath.IsLocal(rel)
}

// openFile opens a regular file. Directories count as missing.
func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return f, nil
}
