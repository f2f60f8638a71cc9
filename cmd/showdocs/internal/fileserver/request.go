package fileserver

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// BufferSize is the size of the single request read and of each
	// chunk streamed from a file.
	BufferSize = 4096

	// DefaultDocument is served for "/" and for request lines without a path.
	DefaultDocument = "index.html"
)

// ErrEmptyRequest is returned when the client sent nothing before the
// read ended.
var ErrEmptyRequest = errors.New("empty request")

// Request is the part of a request line the server cares about.
type Request struct {
	Method string
	Path   string
}

// ReadRequest performs exactly one read of at most BufferSize bytes and
// parses it. Anything beyond the first read is ignored.
func ReadRequest(r io.Reader) (*Request, error) {
	buf := make([]byte, BufferSize)
	n, err := r.Read(buf)
	if n <= 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, ErrEmptyRequest
		}
		return nil, fmt.Errorf("%w: %v", ErrEmptyRequest, err)
	}
	return ParseRequest(buf[:n]), nil
}

// ParseRequest extracts the method and path tokens from raw. A missing
// path or "/" becomes DefaultDocument; otherwise one leading slash is
// removed. The input is not validated.
func ParseRequest(raw []byte) *Request {
	fields := strings.Fields(string(raw))

	req := &Request{Path: DefaultDocument}
	if len(fields) > 0 {
		req.Method = fields[0]
	}
	if len(fields) > 1 && fields[1] != "/" {
		req.Path = strings.TrimPrefix(fields[1], "/")
	}
	return req
}
