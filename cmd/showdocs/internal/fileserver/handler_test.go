package fileserver

import (
	"bytes"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/config"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestHandler(t *testing.T, files map[string]string) *Handler {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, files)

	h := NewHandler(&config.Config{RootDir: root})
	h.now = func() time.Time { return fixedNow }
	return h
}

func response(status, body string) string {
	return status + "\r\n" +
		"Content-Type: text/html\r\n" +
		"Date: Tue, 02 Jan 2024 03:04:05 GMT\r\n" +
		"Content-Length: " + strconv.Itoa(len(body)) + "\r\n" +
		"\r\n" + body
}

func TestHandlerServe(t *testing.T) {
	h := newTestHandler(t, map[string]string{
		"index.html":      "Hello World!",
		"404.html":        "Not Found",
		"docs/guide.html": "<h1>Guide</h1>",
	})

	tests := []struct {
		name       string
		path       string
		wantStatus string
		wantOut    string
	}{
		{"index", "index.html", StatusOK, response(StatusOK, "Hello World!")},
		{"nested", "docs/guide.html", StatusOK, response(StatusOK, "<h1>Guide</h1>")},
		{"missing", "missing.html", StatusNotFound, response(StatusNotFound, "Not Found")},
		{"directory", "docs", StatusNotFound, response(StatusNotFound, "Not Found")},
		{"404 page itself", "404.html", StatusOK, response(StatusOK, "Not Found")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			status, err := h.Serve(&buf, &Request{Method: "GET", Path: tt.path})
			if err != nil {
				t.Fatalf("Serve() error: %v", err)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if diff := cmp.Diff(tt.wantOut, buf.String()); diff != "" {
				t.Errorf("Serve() output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandlerServeWithoutNotFoundPage(t *testing.T) {
	h := newTestHandler(t, map[string]string{"index.html": "Hello World!"})

	var buf bytes.Buffer
	status, err := h.Serve(&buf, &Request{Path: "missing.html"})
	if err != nil {
		t.Fatalf("Serve() error: %v", err)
	}
	if status != "" || buf.Len() != 0 {
		t.Errorf("Serve() = %q with %d bytes, want nothing sent", status, buf.Len())
	}
}

func TestHandlerServeIsRepeatable(t *testing.T) {
	h := newTestHandler(t, map[string]string{"index.html": "Hello World!"})

	var first, second bytes.Buffer
	h.Serve(&first, &Request{Path: "index.html"})
	h.Serve(&second, &Request{Path: "index.html"})
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("responses differ:\n%q\n%q", first.String(), second.String())
	}
}

func TestHandlerTraversal(t *testing.T) {
	parent := t.TempDir()
	writeFiles(t, parent, map[string]string{
		"secret.txt":     "top secret",
		"www/index.html": "Hello World!",
		"www/404.html":   "Not Found",
	})
	root := filepath.Join(parent, "www")

	h := NewHandler(&config.Config{RootDir: root})
	h.now = func() time.Time { return fixedNow }

	var open bytes.Buffer
	if status, _ := h.Serve(&open, &Request{Path: "../secret.txt"}); status != StatusOK {
		t.Errorf("unconfined status = %q, want 200", status)
	}
	if !bytes.HasSuffix(open.Bytes(), []byte("top secret")) {
		t.Errorf("unconfined body = %q", open.String())
	}

	h.Confine = true
	var confined bytes.Buffer
	status, _ := h.Serve(&confined, &Request{Path: "../secret.txt"})
	if status != StatusNotFound {
		t.Errorf("confined status = %q, want 404", status)
	}
	if diff := cmp.Diff(response(StatusNotFound, "Not Found"), confined.String()); diff != "" {
		t.Errorf("confined output mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerEmptyRootUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"index.html": "cwd"})

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	h := NewHandler(config.Default())
	h.now = func() time.Time { return fixedNow }

	var buf bytes.Buffer
	if status, _ := h.Serve(&buf, &Request{Path: "index.html"}); status != StatusOK {
		t.Fatalf("status = %q", status)
	}
	if buf.String() != response(StatusOK, "cwd") {
		t.Errorf("output = %q", buf.String())
	}
}

func exchange(t *testing.T, h *Handler, request string) string {
	t.Helper()
	client, server := net.Pipe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.HandleConnection(server)
		server.Close()
	}()

	client.SetDeadline(time.Now().Add(2 * time.Second))
	if request != "" {
		if _, err := client.Write([]byte(request)); err != nil {
			t.Fatalf("write request: %v", err)
		}
	} else {
		client.Close()
		<-done
		return ""
	}

	out, err := io.ReadAll(client)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	client.Close()
	<-done
	return string(out)
}

func TestHandleConnection(t *testing.T) {
	h := newTestHandler(t, map[string]string{
		"index.html": "Hello World!",
		"404.html":   "Not Found",
	})

	tests := []struct {
		name    string
		request string
		want    string
	}{
		{"root", "GET / HTTP/1.1\r\nHost: localhost\r\n\r\n", response(StatusOK, "Hello World!")},
		{"explicit index", "GET /index.html HTTP/1.1\r\n\r\n", response(StatusOK, "Hello World!")},
		{"missing", "GET /missing.html HTTP/1.1\r\n\r\n", response(StatusNotFound, "Not Found")},
		{"no path", "GET\r\n", response(StatusOK, "Hello World!")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, exchange(t, h, tt.request)); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandleConnectionEmpty(t *testing.T) {
	h := newTestHandler(t, map[string]string{"index.html": "Hello World!"})
	if got := exchange(t, h, ""); got != "" {
		t.Errorf("got %q for an empty connection", got)
	}
}

func TestHandleConnectionReadTimeout(t *testing.T) {
	h := newTestHandler(t, map[string]string{"index.html": "Hello World!"})
	h.ReadTimeout = 50 * time.Millisecond

	client, server := net.Pipe()
	defer client.Close()

	done := make(chan struct{})
	go func() {
		h.HandleConnection(server)
		server.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("silent client stalled the handler despite ReadTimeout")
	}
}
