package client

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adamwoolhether/firework/client/throttle"
)

// TransportSettings configure the network session an [HTTPAdaptor] builds.
// An adaptor reads them once, when it is constructed.
type TransportSettings struct {
	// HTTPClient replaces the default *http.Client. It is copied, never mutated.
	HTTPClient *http.Client `toml:"-" validate:"-"`

	// RoundTripper sets the base transport, taking precedence over the
	// transport of HTTPClient.
	RoundTripper http.RoundTripper `toml:"-" validate:"-"`

	// Timeout bounds each whole exchange. Zero keeps the client's own value.
	Timeout time.Duration `toml:"-" validate:"gte=0"`

	// UserAgent is set on every outgoing request when non-empty.
	UserAgent string `toml:"user_agent"`

	// Throttle enables token-bucket rate limiting when non-nil.
	Throttle *throttle.Config `toml:"throttle" validate:"-"`

	// NoFollowRedirects makes 3xx responses final.
	NoFollowRedirects bool `toml:"no_follow_redirects"`
}

// Validate checks the settings' field constraints.
func (s TransportSettings) Validate() error {
	if err := checkFields(s); err != nil {
		return fmt.Errorf("transport settings: %w", err)
	}
	if s.Throttle != nil {
		if err := s.Throttle.Validate(); err != nil {
			return fmt.Errorf("transport settings: throttle: %w", err)
		}
	}

	return nil
}

// Configuration is shared client state: the transport settings adaptors are
// built from, and the decoder used when a request has no preferred one.
//
// A Configuration may back many clients. Its default decoder can be swapped
// at any time and is read on every send; its transport settings only affect
// adaptors constructed afterwards.
type Configuration struct {
	mu        sync.RWMutex
	transport TransportSettings

	decoder atomic.Pointer[decoderRef]
}

// decoderRef lets atomic.Pointer hold any Decoder implementation.
type decoderRef struct {
	Decoder
}

// NewConfiguration builds a Configuration from the given options.
func NewConfiguration(optFns ...ConfigOption) (*Configuration, error) {
	var opts configOptions
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying configuration option: %w", err)
		}
	}

	if err := opts.settings.Validate(); err != nil {
		return nil, err
	}

	cfg := &Configuration{transport: opts.settings}
	cfg.SetDefaultDecoder(opts.decoder)

	return cfg, nil
}

// DefaultConfiguration returns a fresh Configuration with default transport
// settings and a plain [JSONDecoder]. Each call returns a new instance.
func DefaultConfiguration() *Configuration {
	cfg := &Configuration{}
	cfg.SetDefaultDecoder(nil)

	return cfg
}

// DefaultDecoder returns the decoder used when a request has no preferred one.
func (c *Configuration) DefaultDecoder() Decoder {
	ref := c.decoder.Load()
	if ref == nil {
		return &JSONDecoder{}
	}

	return ref.Decoder
}

// SetDefaultDecoder swaps the default decoder. Sends already waiting on
// their response pick up the new decoder. A nil decoder restores a plain
// [JSONDecoder].
func (c *Configuration) SetDefaultDecoder(d Decoder) {
	if d == nil {
		d = &JSONDecoder{}
	}

	c.decoder.Store(&decoderRef{Decoder: d})
}

// TransportSettings returns a copy of the current transport settings.
func (c *Configuration) TransportSettings() TransportSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.transport
	if s.Throttle != nil {
		t := *s.Throttle
		s.Throttle = &t
	}

	return s
}

// SetTransportSettings replaces the transport settings. Adaptors that were
// already constructed keep the settings they captured.
func (c *Configuration) SetTransportSettings(s TransportSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.transport = s

	return nil
}

// ————————————————————————————————————————————————————————————————————
// Configuration options
// ————————————————————————————————————————————————————————————————————

// ConfigOption is a functional option for [NewConfiguration].
type ConfigOption func(*configOptions) error

type configOptions struct {
	settings TransportSettings
	decoder  Decoder
}

// WithTransportSettings replaces all transport settings at once. Options
// applied after it still adjust individual fields.
func WithTransportSettings(s TransportSettings) ConfigOption {
	return func(o *configOptions) error {
		o.settings = s
		return nil
	}
}

// WithHTTPClient replaces the default [http.Client] used by the adaptor.
func WithHTTPClient(hc *http.Client) ConfigOption {
	return func(o *configOptions) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.settings.HTTPClient = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) ConfigOption {
	return func(o *configOptions) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.settings.RoundTripper = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) ConfigOption {
	return func(o *configOptions) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.settings.Timeout = d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) ConfigOption {
	return func(o *configOptions) error {
		o.settings.UserAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) ConfigOption {
	return func(o *configOptions) error {
		cfg := throttle.Config{RPS: rps, Burst: burst}
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.settings.Throttle = &cfg
		return nil
	}
}

// WithNoFollowRedirects prevents the adaptor from following HTTP redirects.
func WithNoFollowRedirects() ConfigOption {
	return func(o *configOptions) error {
		o.settings.NoFollowRedirects = true
		return nil
	}
}

// WithDefaultDecoder sets the decoder used when a request has no preferred one.
func WithDefaultDecoder(d Decoder) ConfigOption {
	return func(o *configOptions) error {
		if d == nil {
			return errors.New("decoder must not be nil")
		}
		o.decoder = d
		return nil
	}
}
