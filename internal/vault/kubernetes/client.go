// Package kubernetes serves secrets stored as Kubernetes Secret objects in a single namespace.
package kubernetes

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Adding the following variables, so that the code can be tested
var (
	inClusterConfig      = rest.InClusterConfig
	buildConfigFromFlags = clientcmd.BuildConfigFromFlags
	newForConfig         = kubernetes.NewForConfig
)

// DefaultValueKey is the data key read when a Secret holds several keys.
const DefaultValueKey = "value"

type Client struct {
	ClientSet kubernetes.Interface
	Namespace string
	ValueKey  string
}

// NewClient creates a new Kubernetes client. It first tries to create an in-cluster config
// and falls back to $HOME/.kube/config.
func NewClient(namespace, valueKey string) (*Client, error) {
	config, err := inClusterConfig()
	if err != nil {
		kubeconfig := filepath.Join(os.Getenv("HOME"), ".kube", "config")
		config, err = buildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
	}

	return NewClientWithConfig(config, namespace, valueKey)
}

// NewClientWithConfig Function to use injected config for testing
func NewClientWithConfig(config *rest.Config, namespace, valueKey string) (*Client, error) {
	clientset, err := newForConfig(config)
	if err != nil {
		return nil, err
	}
	return newClient(clientset, namespace, valueKey), nil
}

func newClient(clientset kubernetes.Interface, namespace, valueKey string) *Client {
	if namespace == "" {
		namespace = "default"
	}
	if valueKey == "" {
		valueKey = DefaultValueKey
	}
	return &Client{ClientSet: clientset, Namespace: namespace, ValueKey: valueKey}
}

// Backend implements vault.Store.
func (c *Client) Backend() string {
	return "kubernetes"
}
