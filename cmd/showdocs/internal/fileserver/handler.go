package fileserver

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/config"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/logger"
)

// Handler serves files from RootDir. It implements core.ConnectionHandler.
type Handler struct {
	RootDir     string
	ReadTimeout time.Duration
	Confine     bool

	now func() time.Time
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		RootDir:     cfg.RootDir,
		ReadTimeout: cfg.ReadTimeout,
		Confine:     cfg.Confine,
		now:         time.Now,
	}
}

// HandleConnection reads one request from conn and answers it. The caller
// closes conn.
func (h *Handler) HandleConnection(conn net.Conn) {
	if h.ReadTimeout > 0 {
		conn.SetDeadline(time.Now().Add(h.ReadTimeout))
	}

	req, err := ReadRequest(conn)
	if err != nil {
		logger.Debug("Connection closed without a request", "remote_addr", conn.RemoteAddr(), "error", err)
		return
	}

	logger.Info("Request", "method", req.Method, "path", req.Path, "remote_addr", conn.RemoteAddr())
	if _, err := h.Serve(conn, req); err != nil {
		logger.Warn("Response failed", "path", req.Path, "error", err)
	}
}

// Serve answers req on w: the requested file with 200, else 404.html with
// 404, else nothing. It returns the status line that was sent, or "" when
// no response was written.
func (h *Handler) Serve(w io.Writer, req *Request) (string, error) {
	date := FormatDate(h.clock())

	switch {
	case h.exists(req.Path):
		if err := Respond(w, StatusOK, req.Path, date, h.RootDir); err != nil {
			return h.failed(StatusOK, err)
		}
		logger.Info("200 OK", "path", req.Path)
		return StatusOK, nil

	case h.exists(NotFoundPage):
		if err := Respond(w, StatusNotFound, NotFoundPage, date, h.RootDir); err != nil {
			return h.failed(StatusNotFound, err)
		}
		logger.Warn("404 Not Found", "path", req.Path)
		return StatusNotFound, nil

	default:
		logger.Error("404 page not found and no 404.html available", "path", req.Path)
		return "", nil
	}
}

// failed maps a Respond error to Serve's result. The file may vanish
// between the existence check and the open, in which case nothing was sent.
func (h *Handler) failed(status string, err error) (string, error) {
	if errors.Is(err, ErrUnavailable) {
		logger.Debug("File disappeared before it could be sent", "error", err)
		return "", nil
	}
	return status, err
}

func (h *Handler) exists(name string) bool {
	if h.Confine && !Contained(name) {
		logger.Warn("Request path leaves the root directory", "path", name)
		return false
	}
	f, err := openFile(Resolve(h.RootDir, name))
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func (h *Handler) clock() time.Time {
	if h.now == nil {
		return time.Now()
	}
	return h.now()
}
