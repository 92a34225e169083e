// Package firework exposes the client builder.
package firework

import (
	"fmt"
	"io"

	"github.com/adamwoolhether/firework/client"
)

// NewClient instantiates a new *client.Client with the provided options.
// If not specified, the default configuration and http adaptor are used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// NewClientFromSettings builds a client whose configuration is read from a
// TOML transport settings document. opts are applied after the configuration.
func NewClientFromSettings(r io.Reader, opts ...client.Option) (*client.Client, error) {
	settings, err := client.LoadTransportSettings(r)
	if err != nil {
		return nil, err
	}

	cfg, err := client.NewConfiguration(client.WithTransportSettings(settings))
	if err != nil {
		return nil, fmt.Errorf("creating configuration: %w", err)
	}

	return client.Build(append([]client.Option{client.WithConfiguration(cfg)}, opts...)...)
}
