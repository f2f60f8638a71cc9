package config

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file syntax.
type Format string

const (
	FormatINI  Format = "ini"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromName derives the format from a file or key name. Anything
// that is not TOML or YAML is read as INI.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatINI
	}
}

// Parse reads settings in the given format and applies them on top of cfg.
// Keys are matched case-insensitively; unknown keys are ignored.
func Parse(format Format, r io.Reader, cfg *Config) error {
	switch format {
	case FormatTOML:
		var doc map[string]any
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return fmt.Errorf("failed to decode toml: %w", err)
		}
		return applyDocument(doc, cfg)
	case FormatYAML:
		var doc map[string]any
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return fmt.Errorf("failed to decode yaml: %w", err)
		}
		return applyDocument(doc, cfg)
	default:
		return parseINI(r, cfg)
	}
}

// parseINI handles "key = value" lines. ';' and '#' comments are
// skipped, lines without '=' are ignored and [section] headers only group
// keys: every section is applied in file order.
func parseINI(r io.Reader, cfg *Config) error {
	f, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		SkipUnrecognizableLines: true,
		KeyValueDelimiters:      "=",
	}, r)
	if err != nil {
		return fmt.Errorf("failed to decode ini: %w", err)
	}

	for _, section := range f.Sections() {
		for _, key := range section.Keys() {
			if err := apply(cfg, key.Name(), strings.TrimSpace(key.Value())); err != nil {
				return fmt.Errorf("section %q: %w", section.Name(), err)
			}
		}
	}
	return nil
}

// applyDocument flattens a decoded TOML/YAML document. Tables are
// descended into the same way INI sections are ignored.
func applyDocument(doc map[string]any, cfg *Config) error {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := doc[k].(type) {
		case map[string]any:
			if err := applyDocument(v, cfg); err != nil {
				return err
			}
		case nil:
		default:
			if err := apply(cfg, k, fmt.Sprint(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Set applies a single setting by name. Unknown keys are ignored.
func Set(cfg *Config, key, value string) error {
	return apply(cfg, strings.TrimSpace(key), strings.TrimSpace(value))
}

func apply(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "port":
		cfg.Port, err = parseInt(key, value)
	case "listenaddr", "listenaddress":
		cfg.ListenAddr = value
	case "rootdir":
		cfg.RootDir = value
	case "execstart":
		cfg.ExecStart = value
	case "execstart_win", "execstart_windows":
		cfg.ExecStartWindows = value
	case "execstart_linux":
		cfg.ExecStartLinux = value
	case "execstart_macos", "execstart_darwin":
		cfg.ExecStartMacOS = value
	case "healthport":
		cfg.HealthPort, err = parseInt(key, value)
	case "readtimeout":
		cfg.ReadTimeout, err = parseDuration(key, value)
	case "confine":
		cfg.Confine, err = parseBool(key, value)
	case "debug":
		cfg.Debug, err = parseBool(key, value)
	}
	return err
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

// parseDuration accepts Go durations ("2s") or bare seconds ("2").
func parseDuration(key, value string) (time.Duration, error) {
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
