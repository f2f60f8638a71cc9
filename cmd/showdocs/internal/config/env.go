package config

import (
	"fmt"
	"os"
	"strings"
)

// SourceMode represents where the server settings come from
type SourceMode string

const (
	SourceFile       SourceMode = "file"
	SourceKubernetes SourceMode = "kubernetes"
	SourceInline     SourceMode = "inline"
)

const DefaultConfigMapKey = "showdocs.ini"

// namespaceFile is read when running inside a cluster.
var namespaceFile = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"

// SourceSettings describes how to locate the configuration. It is read
// from the environment before anything else is loaded.
type SourceSettings struct {
	Mode SourceMode

	// File source
	Path string

	// Inline source: "key=value,key=value"
	Inline string

	// Kubernetes source
	Namespace      string
	ConfigMap      string
	ConfigMapKey   string
	KubeConfigPath string
	KubeContext    string
}

// LoadSourceSettings reads the source selection from environment variables.
// path is the config file used in file mode.
func LoadSourceSettings(path string) (*SourceSettings, error) {
	s := &SourceSettings{
		Mode: determineSourceMode(),
		Path: path,

		Inline: getEnv("SHOWDOCS_CONFIG", ""),

		Namespace:      determineNamespace(),
		ConfigMap:      getEnv("SHOWDOCS_CONFIGMAP", ""),
		ConfigMapKey:   getEnv("SHOWDOCS_CONFIGMAP_KEY", DefaultConfigMapKey),
		KubeConfigPath: getEnv("KUBECONFIG", ""),
		KubeContext:    getEnv("KUBE_CONTEXT", ""),
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SourceSettings) validate() error {
	switch s.Mode {
	case SourceFile:
		if s.Path == "" {
			return fmt.Errorf("config file path must be set in file mode")
		}
	case SourceKubernetes:
		if s.ConfigMap == "" {
			return fmt.Errorf("SHOWDOCS_CONFIGMAP must be set when using the kubernetes config source")
		}
	case SourceInline:
		if s.Inline == "" {
			return fmt.Errorf("SHOWDOCS_CONFIG must be set when using the inline config source")
		}
	default:
		return fmt.Errorf("unsupported SHOWDOCS_CONFIG_SOURCE: %s (supported: file, kubernetes, inline)", s.Mode)
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func determineSourceMode() SourceMode {
	// Explicit mode
	if mode := os.Getenv("SHOWDOCS_CONFIG_SOURCE"); mode != "" {
		switch strings.ToLower(mode) {
		case "file", "ini":
			return SourceFile
		case "kubernetes", "k8s", "configmap":
			return SourceKubernetes
		case "inline", "env", "memory":
			return SourceInline
		}
		return SourceMode(mode)
	}

	// Auto-detect: kubernetes if a ConfigMap is named
	if os.Getenv("SHOWDOCS_CONFIGMAP") != "" {
		return SourceKubernetes
	}

	return SourceFile
}

func determineNamespace() string {
	// Explicit namespace
	if ns := os.Getenv("NAMESPACE"); ns != "" {
		return ns
	}

	// Kubernetes downward API
	if ns := os.Getenv("POD_NAMESPACE"); ns != "" {
		return ns
	}

	// Read from service account (in-cluster)
	if data, err := os.ReadFile(namespaceFile); err == nil {
		return strings.TrimSpace(string(data))
	}

	return "default"
}
