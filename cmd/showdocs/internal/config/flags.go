package config

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"
)

// ErrInvalidPort is returned when --port is not a usable TCP port.
var ErrInvalidPort = errors.New("invalid port number")

// Flags are the command-line overrides.
type Flags struct {
	Version    bool
	Port       int
	ConfigPath string

	portSet bool
}

// ParseFlags parses args (without the program name). pflag.ErrHelp is
// returned unchanged for -h/--help. Unknown flags are ignored, and
// --port is not checked when --version is given.
func ParseFlags(args []string, output io.Writer) (*Flags, error) {
	f := &Flags{}
	var port string

	fs := pflag.NewFlagSet("showdocs", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.BoolVarP(&f.Version, "version", "v", false, "print version information and exit")
	fs.StringVar(&port, "port", "", "listen port, overrides the config file")
	fs.StringVar(&f.ConfigPath, "config", "", "config file (default: <executable>.ini)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.Version {
		return f, nil
	}

	if fs.Changed("port") {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPort, port)
		}
		f.Port = n
		f.portSet = true
	}
	return f, nil
}

// Apply writes the flag overrides into cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.portSet {
		cfg.Port = f.Port
	}
}
