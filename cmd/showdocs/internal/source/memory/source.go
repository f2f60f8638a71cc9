package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/config"
)

// Source holds settings given inline, typically through an environment
// variable when no config file is mounted.
type Source struct {
	settings map[string]string
}

// NewSource creates a source from a comma-separated string.
// Format: "key=value,..."
// Example: "Port=8000,RootDir=/srv/www"
func NewSource(mappingStr string) (*Source, error) {
	settings := make(map[string]string)
	if strings.TrimSpace(mappingStr) == "" {
		return &Source{settings: settings}, nil
	}

	for _, pair := range strings.Split(mappingStr, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid setting format: %s", pair)
		}
		settings[key] = strings.TrimSpace(value)
	}

	return &Source{settings: settings}, nil
}

// Load applies the settings in key order. An empty source reports
// config.ErrNotFound so callers fall back to defaults.
func (s *Source) Load(ctx context.Context, cfg *config.Config) error {
	if len(s.settings) == 0 {
		return config.ErrNotFound
	}

	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := config.Set(cfg, k, s.settings[k]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Source) String() string {
	return fmt.Sprintf("inline (%d settings)", len(s.settings))
}
