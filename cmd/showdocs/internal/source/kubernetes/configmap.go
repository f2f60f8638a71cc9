package kubernetes

import (
	"context"
	"fmt"
	"strings"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/config"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ConfigMapSource reads the server settings from one key of a ConfigMap.
// The key name decides the format, e.g. "showdocs.ini" or "showdocs.yaml".
type ConfigMapSource struct {
	clientset kubernetes.Interface
	namespace string
	name      string
	key       string
}

func NewConfigMapSource(clientset kubernetes.Interface, namespace, name, key string) *ConfigMapSource {
	return &ConfigMapSource{
		clientset: clientset,
		namespace: namespace,
		name:      name,
		key:       key,
	}
}

func (s *ConfigMapSource) Load(ctx context.Context, cfg *config.Config) error {
	cm, err := s.clientset.CoreV1().ConfigMaps(s.namespace).Get(ctx, s.name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return fmt.Errorf("configmap %s/%s: %w", s.namespace, s.name, config.ErrNotFound)
		}
		return fmt.Errorf("failed to get configmap %s/%s: %w", s.namespace, s.name, err)
	}

	data, ok := cm.Data[s.key]
	if !ok {
		if bin, found := cm.BinaryData[s.key]; found {
			data, ok = string(bin), true
		}
	}
	if !ok {
		return fmt.Errorf("configmap %s/%s has no key %q: %w", s.namespace, s.name, s.key, config.ErrNotFound)
	}

	if err := config.Parse(config.FormatFromName(s.key), strings.NewReader(data), cfg); err != nil {
		return fmt.Errorf("failed to parse configmap %s/%s key %q: %w", s.namespace, s.name, s.key, err)
	}
	return nil
}

func (s *ConfigMapSource) String() string {
	return fmt.Sprintf("configmap %s/%s[%s]", s.namespace, s.name, s.key)
}
