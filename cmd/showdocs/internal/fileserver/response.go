package fileserver

import (
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	StatusOK       = "HTTP/1.1 200 OK"
	StatusNotFound = "HTTP/1.1 404 Not Found"

	// NotFoundPage is served from the root when the requested file is missing.
	NotFoundPage = "404.html"

	// ContentType is sent for every file.
	ContentType = "text/html"

	// DateLayout is the HTTP date format, always in GMT.
	DateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// ErrUnavailable is returned by Respond when the file cannot be opened.
// Nothing has been written in that case.
var ErrUnavailable = errors.New("file unavailable")

// FormatDate renders t for the Date header.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Respond writes the header block for name (resolved under root) and
// streams its content in BufferSize chunks.
func Respond(w io.Writer, status, name, date, root string) error {
	f, err := openFile(Resolve(root, name))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	header := fmt.Sprintf("%s\r\nContent-Type: %s\r\nDate: %s\r\nContent-Length: %d\r\n\r\n",
		status, ContentType, date, size)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	buf := make([]byte, BufferSize)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return fmt.Errorf("failed to write body: %w", err)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", name, readErr)
		}
	}
}
