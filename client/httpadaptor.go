package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/moul/http2curl"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/adamwoolhether/firework/client/throttle"
)

// RequestIDHeader is stamped on every outgoing request that lacks it.
const RequestIDHeader = "X-Request-ID"

// HTTPAdaptor is the default [Adaptor], backed by net/http.
//
// Bodies are sent as JSON. Responses are read fully, then checked with
// [ValidateResponse] before the completion runs. The request context is
// honored: cancelling it aborts the exchange with a [TransportError].
type HTTPAdaptor struct {
	c      *http.Client
	logger *slog.Logger
}

// NewHTTPAdaptor builds an adaptor from the configuration's current
// transport settings. Later changes to cfg's transport settings do not
// affect it. A nil logger means slog.Default().
func NewHTTPAdaptor(cfg *Configuration, logger *slog.Logger) (*HTTPAdaptor, error) {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	if logger == nil {
		logger = slog.Default()
	}

	settings := cfg.TransportSettings()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	a := &HTTPAdaptor{
		c:      &http.Client{},
		logger: logger,
	}

	if settings.HTTPClient != nil {
		hc := *settings.HTTPClient
		a.c = &hc
	}

	if settings.Timeout > 0 {
		a.c.Timeout = settings.Timeout
	}

	if settings.NoFollowRedirects {
		a.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case settings.RoundTripper != nil:
		transport = settings.RoundTripper
	case settings.HTTPClient != nil && settings.HTTPClient.Transport != nil:
		transport = settings.HTTPClient.Transport
	default:
		transport = http.DefaultTransport
	}
	if settings.UserAgent != "" {
		transport = userAgent{value: settings.UserAgent, base: transport}
	}
	if settings.Throttle != nil {
		rt, err := throttle.NewRoundTripper(*settings.Throttle, func() *slog.Logger { return a.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	a.c.Transport = transport

	return a, nil
}

// Send implements [Adaptor]. A response without a body completes with nil.
func (a *HTTPAdaptor) Send(ctx context.Context, r Request, q Queue, completion Completion) {
	a.dispatch(ctx, r, q, false, completion)
}

// SendData implements [DataSender].
func (a *HTTPAdaptor) SendData(ctx context.Context, r Request, q Queue, completion Completion) {
	a.dispatch(ctx, r, q, true, completion)
}

// dispatch runs the exchange on its own goroutine and hands the outcome to q.
func (a *HTTPAdaptor) dispatch(ctx context.Context, r Request, q Queue, requireBody bool, completion Completion) {
	if ctx == nil {
		ctx = context.Background()
	}
	q = queueOrDefault(q)

	go func() {
		body, err := a.exec(ctx, r, requireBody)
		q.Dispatch(func() {
			completion(body, err)
		})
	}()
}

// exec performs one exchange and validates the response.
func (a *HTTPAdaptor) exec(ctx context.Context, r Request, requireBody bool) ([]byte, error) {
	req, err := a.buildRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	if a.logger.Enabled(ctx, slog.LevelDebug) {
		if cmd, err := http2curl.GetCurlCommand(req); err == nil {
			a.logger.Debug("http adaptor sending", "request_id", req.Header.Get(RequestIDHeader), "curl", cmd.String())
		}
	}

	resp, err := a.c.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "exec http do", Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read body", Err: err}
	}

	if err := ValidateResponse(r, resp.StatusCode, resp.Header.Get("Content-Type"), body); err != nil {
		return nil, err
	}

	if len(body) > 0 {
		return body, nil
	}

	switch {
	case !requireBody:
		return nil, nil
	case emptyResponseAllowed(req.Method, resp.StatusCode):
		return []byte{}, nil
	default:
		return nil, ErrEmptyResponse
	}
}

// buildRequest turns a descriptor into an *http.Request.
func (a *HTTPAdaptor) buildRequest(ctx context.Context, r Request) (*http.Request, error) {
	u, err := ResolveURL(r)
	if err != nil {
		return nil, err
	}

	var payload io.Reader = http.NoBody
	body, hasBody := BodyOf(r)
	if hasBody {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method(), u.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range HeadersOf(r) {
		req.Header.Set(k, v)
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, nil
}

// emptyResponseAllowed lists the responses that legitimately carry no body.
func emptyResponseAllowed(method string, statusCode int) bool {
	return method == http.MethodHead ||
		statusCode == http.StatusNoContent ||
		statusCode == http.StatusResetContent
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
