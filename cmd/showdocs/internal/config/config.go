package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	DefaultPort       = 8080
	DefaultListenAddr = "127.0.0.1"
)

// ErrNotFound is returned by a Source when there is nothing to load.
// Callers fall back to defaults.
var ErrNotFound = errors.New("configuration not found")

// Config holds the server settings. It is built once at startup and
// treated as read-only afterwards.
type Config struct {
	Port       int
	ListenAddr string
	RootDir    string

	// Startup command, generic and per platform
	ExecStart        string
	ExecStartWindows string
	ExecStartLinux   string
	ExecStartMacOS   string

	HealthPort  int           // 0 disables the health server
	ReadTimeout time.Duration // per-connection read/write deadline, 0 = none
	Confine     bool          // refuse request paths that leave RootDir
	Debug       bool
}

// Source fills a Config from some backing store.
type Source interface {
	Load(ctx context.Context, cfg *Config) error
	String() string
}

// Default returns the built-in settings used when no source provides values.
func Default() *Config {
	return &Config{
		Port:       DefaultPort,
		ListenAddr: DefaultListenAddr,
	}
}

// Validate ensures configuration is coherent
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.Port)
	}
	if c.HealthPort < 0 || c.HealthPort > 65535 {
		return fmt.Errorf("invalid health port number: %d", c.HealthPort)
	}
	if c.HealthPort != 0 && c.HealthPort == c.Port {
		return fmt.Errorf("health port %d collides with the server port", c.HealthPort)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("read timeout must not be negative: %s", c.ReadTimeout)
	}
	return nil
}

// Address returns the host:port pair the server binds to.
func (c *Config) Address() string {
	return net.JoinHostPort(c.ListenAddr, strconv.Itoa(c.Port))
}

// HealthAddress returns the host:port pair of the health server.
func (c *Config) HealthAddress() string {
	return net.JoinHostPort(c.ListenAddr, strconv.Itoa(c.HealthPort))
}

// ExecCommand picks the startup command for goos, falling back to the
// generic ExecStart. It returns "" when nothing is configured.
func (c *Config) ExecCommand(goos string) string {
	var cmd string
	switch goos {
	case "windows":
		cmd = c.ExecStartWindows
	case "darwin":
		cmd = c.ExecStartMacOS
	case "linux":
		cmd = c.ExecStartLinux
	}
	if cmd == "" {
		cmd = c.ExecStart
	}
	return cmd
}
