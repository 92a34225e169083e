package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Client sends request descriptors through an [Adaptor] and, for decoding
// requests, decodes the response body.
//
// A Client holds no per-call state and is safe for concurrent use.
type Client struct {
	config  *Configuration
	adaptor Adaptor
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Build creates a Client. Without options it uses [DefaultConfiguration]
// and an [HTTPAdaptor] built from it.
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	c := &Client{
		config:  opts.config,
		adaptor: opts.adaptor,
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer("no-op tracer"),
	}

	if opts.logger != nil {
		c.logger = opts.logger
	}

	if opts.tracer != nil {
		c.tracer = opts.tracer
	}

	if c.config == nil {
		c.config = DefaultConfiguration()
	}

	if c.adaptor == nil {
		a, err := NewHTTPAdaptor(c.config, c.logger)
		if err != nil {
			return nil, fmt.Errorf("building http adaptor: %w", err)
		}
		c.adaptor = a
	}

	return c, nil
}

// New creates a Client over an existing configuration and adaptor.
func New(cfg *Configuration, a Adaptor) *Client {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}

	return &Client{
		config:  cfg,
		adaptor: a,
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer("no-op tracer"),
	}
}

// Configuration returns the configuration the client reads its default
// decoder from.
func (c *Client) Configuration() *Configuration {
	return c.config
}

// Adaptor returns the client's transport adaptor.
func (c *Client) Adaptor() Adaptor {
	return c.adaptor
}

// Send dispatches r and hands the raw body, nil if the response had
// none, to completion on q. completion runs exactly once.
//
// Send panics with a *ConfigurationError if r's endpoint is not a valid URL.
func (c *Client) Send(ctx context.Context, r Request, q Queue, completion Completion) {
	c.dispatch(ctx, r, q, false, func(body []byte, err error) error {
		completion(body, err)
		return err
	})
}

// Do is the blocking form of [Client.Send]. The completion still runs on
// q, so q must not be a queue the caller itself is running on.
//
// ctx is handed to the adaptor; Do returns only once the adaptor reports.
func (c *Client) Do(ctx context.Context, r Request, q Queue) ([]byte, error) {
	type result struct {
		body []byte
		err  error
	}

	ch := make(chan result, 1)
	c.Send(ctx, r, q, func(body []byte, err error) {
		ch <- result{body: body, err: err}
	})

	res := <-ch
	return res.body, res.err
}

// SendDecoding dispatches r and decodes the response body into T.
//
// The decoder is r.PreferredDecoder(), or the configuration's default
// decoder when that is nil, looked up once the body has arrived. Adaptor
// failures reach completion untouched and skip decoding; decode failures
// arrive as *DecodeError. completion runs exactly once, on q.
func SendDecoding[T any](ctx context.Context, c *Client, r DecodingRequest[T], q Queue, completion func(T, error)) {
	c.dispatch(ctx, r, q, true, func(body []byte, err error) error {
		var resp T
		if err != nil {
			completion(resp, err)
			return err
		}

		if err := c.decode(r.PreferredDecoder(), body, &resp); err != nil {
			var zero T
			completion(zero, err)
			return err
		}

		completion(resp, nil)
		return nil
	})
}

// DoDecoding is the blocking form of [SendDecoding].
func DoDecoding[T any](ctx context.Context, c *Client, r DecodingRequest[T], q Queue) (T, error) {
	type result struct {
		resp T
		err  error
	}

	ch := make(chan result, 1)
	SendDecoding(ctx, c, r, q, func(resp T, err error) {
		ch <- result{resp: resp, err: err}
	})

	res := <-ch
	return res.resp, res.err
}

// decode runs preferred, falling back to the configuration's default
// decoder, and guarantees a *DecodeError on failure.
func (c *Client) decode(preferred Decoder, body []byte, v any) error {
	decoder := preferred
	if decoder == nil {
		decoder = c.config.DefaultDecoder()
	}

	if err := decoder.Decode(body, v); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return err
		}
		return &DecodeError{Type: typeNameOf(v), Err: err}
	}

	return nil
}

// dispatch resolves r, opens the send span and hands r to the adaptor.
// finish runs at most once with the adaptor's outcome and returns the
// error to record on the span.
func (c *Client) dispatch(ctx context.Context, r Request, q Queue, requireBody bool, finish func([]byte, error) error) {
	if ctx == nil {
		ctx = context.Background()
	}

	u, err := ResolveURL(r)
	if err != nil {
		c.logger.Error("invalid request endpoint", "request", fmt.Sprintf("%T", r), "error", err)
		panic(err)
	}

	ctx, span := c.tracer.Start(ctx, "client.send", trace.WithAttributes(
		attribute.String("http.method", r.Method()),
		attribute.String("url", u.String()),
	))

	start := time.Now()
	c.logger.Debug("client send dispatched", "method", r.Method(), "url", u.String())

	var completed atomic.Bool
	completion := func(body []byte, err error) {
		if !completed.CompareAndSwap(false, true) {
			c.logger.Error("adaptor completed a request more than once", "method", r.Method(), "url", u.String())
			return
		}
		defer span.End()

		err = finish(body, err)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			var statusErr *UnexpectedStatusError
			if errors.As(err, &statusErr) {
				span.SetAttributes(attribute.Int("http.status_code", statusErr.StatusCode))
			}
		}

		c.logger.Debug("client send completed", "method", r.Method(), "url", u.String(), "since", time.Since(start).String(), "error", err)
	}

	if requireBody {
		c.adaptor.SendData(ctx, r, queueOrDefault(q), completion)
		return
	}
	c.adaptor.Send(ctx, r, queueOrDefault(q), completion)
}
