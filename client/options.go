package client

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	config  *Configuration
	adaptor Adaptor
	logger  *slog.Logger
	tracer  trace.Tracer
}

// WithConfiguration sets the configuration the [Client] reads its default
// decoder from, and the default adaptor is built from.
func WithConfiguration(cfg *Configuration) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("configuration must not be nil")
		}
		o.config = cfg
		return nil
	}
}

// WithAdaptor replaces the default [HTTPAdaptor].
func WithAdaptor(a Adaptor) Option {
	return func(o *options) error {
		if a == nil {
			return errors.New("adaptor must not be nil")
		}
		o.adaptor = a
		return nil
	}
}

// WithDataSender replaces the default [HTTPAdaptor] with one derived from d
// by [AdaptorFrom].
func WithDataSender(d DataSender) Option {
	return func(o *options) error {
		if d == nil {
			return errors.New("data sender must not be nil")
		}
		o.adaptor = AdaptorFrom(d)
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client] and its
// default adaptor.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer each send opens its span with.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}
