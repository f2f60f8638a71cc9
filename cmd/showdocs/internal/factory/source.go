package factory

import (
	"context"
	"fmt"
	"os"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/config"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/logger"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/source/kubernetes"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/source/memory"

	k8s "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// SourceFactory creates configuration sources based on the source settings
type SourceFactory struct {
	settings *config.SourceSettings

	// newClientset is swapped in tests
	newClientset func(*rest.Config) (k8s.Interface, error)
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(settings *config.SourceSettings) *SourceFactory {
	return &SourceFactory{
		settings: settings,
		newClientset: func(c *rest.Config) (k8s.Interface, error) {
			return k8s.NewForConfig(c)
		},
	}
}

// Create creates a config source based on the configured mode
func (f *SourceFactory) Create(ctx context.Context) (config.Source, error) {
	switch f.settings.Mode {
	case config.SourceFile:
		logger.Debug("Creating file config source", "path", f.settings.Path)
		return config.NewFileSource(f.settings.Path), nil
	case config.SourceKubernetes:
		return f.createConfigMapSource()
	case config.SourceInline:
		logger.Debug("Creating inline config source")
		return memory.NewSource(f.settings.Inline)
	default:
		return nil, fmt.Errorf("unknown config source: %s", f.settings.Mode)
	}
}

func (f *SourceFactory) createConfigMapSource() (config.Source, error) {
	logger.Info("Creating Kubernetes ConfigMap source",
		"namespace", f.settings.Namespace,
		"configmap", f.settings.ConfigMap,
		"key", f.settings.ConfigMapKey)

	restConfig, err := f.restConfig()
	if err != nil {
		return nil, err
	}

	clientset, err := f.newClientset(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return kubernetes.NewConfigMapSource(clientset,
		f.settings.Namespace,
		f.settings.ConfigMap,
		f.settings.ConfigMapKey), nil
}

// restConfig tries the kubeconfig first and falls back to in-cluster config.
func (f *SourceFactory) restConfig() (*rest.Config, error) {
	kubeconfig := f.settings.KubeConfigPath
	if kubeconfig == "" {
		if home := os.Getenv("HOME"); home != "" {
			candidate := home + "/.kube/config"
			if _, err := os.Stat(candidate); err == nil {
				kubeconfig = candidate
			}
		}
	}

	overrides := &clientcmd.ConfigOverrides{}
	if f.settings.KubeContext != "" {
		overrides.CurrentContext = f.settings.KubeContext
		logger.Info("Using specific Kubernetes context", "context", f.settings.KubeContext)
	}

	if kubeconfig != "" {
		restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
			&clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig},
			overrides,
		).ClientConfig()
		if err == nil {
			return restConfig, nil
		}
		logger.Warn("Failed to load kubeconfig, will try in-cluster config", "kubeconfig", kubeconfig, "error", err)
	}

	logger.Info("Attempting in-cluster Kubernetes configuration")
	restConfig, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build kubernetes config (tried kubeconfig and in-cluster): %w", err)
	}
	return restConfig, nil
}
