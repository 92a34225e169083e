package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Request describes a single HTTP call independently of any transport.
//
// Only the verb and the endpoint are mandatory. Everything else is an
// optional capability a concrete request type may implement:
// [HeaderProvider], [QueryProvider], [StatusAcceptor],
// [ContentTypeAcceptor], [BodySender] and [DecodingRequest].
// Embed one of [GET], [POST], [PUT], [PATCH] or [DELETE] to fix the verb.
type Request interface {
	Method() string
	Endpoint() Endpoint
}

// HeaderProvider is implemented by requests carrying extra headers.
type HeaderProvider interface {
	Headers() map[string]string
}

// QueryProvider is implemented by requests carrying query parameters.
type QueryProvider interface {
	QueryItems() []QueryItem
}

// StatusAcceptor overrides the default acceptable status codes.
type StatusAcceptor interface {
	AcceptableStatusCodes() StatusCodes
}

// ContentTypeAcceptor overrides the acceptable response content types.
type ContentTypeAcceptor interface {
	AcceptableContentTypes() []string
}

// BodySender is implemented by requests sending a JSON object body.
// The body is handed to the adaptor verbatim for encoding.
type BodySender interface {
	Body() map[string]any
}

// DecodingRequest is a request whose response body decodes into T.
// Embed [Decodes] to satisfy it.
type DecodingRequest[T any] interface {
	Request

	// PreferredDecoder returns the decoder for this request, or nil to
	// use the client's default decoder.
	PreferredDecoder() Decoder

	response() T
}

// QueryItem is a single name/value query parameter.
type QueryItem struct {
	Name  string
	Value string
}

// ————————————————————————————————————————————————————————————————————
// Verbs
// ————————————————————————————————————————————————————————————————————

// GET fixes a request's method to GET.
type GET struct{}

func (GET) Method() string { return http.MethodGet }

// DELETE fixes a request's method to DELETE.
type DELETE struct{}

func (DELETE) Method() string { return http.MethodDelete }

// POST fixes a request's method to POST and carries its body.
type POST struct {
	Payload map[string]any
}

func (POST) Method() string { return http.MethodPost }

func (p POST) Body() map[string]any { return p.Payload }

// PUT fixes a request's method to PUT and carries its body.
type PUT struct {
	Payload map[string]any
}

func (PUT) Method() string { return http.MethodPut }

func (p PUT) Body() map[string]any { return p.Payload }

// PATCH fixes a request's method to PATCH and carries its body.
type PATCH struct {
	Payload map[string]any
}

func (PATCH) Method() string { return http.MethodPatch }

func (p PATCH) Body() map[string]any { return p.Payload }

// Decodes marks a request as decoding its response into T.
// A nil Decoder defers to the client configuration's default decoder.
type Decodes[T any] struct {
	Decoder Decoder
}

func (d Decodes[T]) PreferredDecoder() Decoder { return d.Decoder }

func (Decodes[T]) response() (t T) { return t }

// ————————————————————————————————————————————————————————————————————
// Resolution
// ————————————————————————————————————————————————————————————————————

// HeadersOf returns the request's headers, or nil.
func HeadersOf(r Request) map[string]string {
	if hp, ok := r.(HeaderProvider); ok {
		return hp.Headers()
	}

	return nil
}

// QueryItemsOf returns the request's query items, or nil.
func QueryItemsOf(r Request) []QueryItem {
	if qp, ok := r.(QueryProvider); ok {
		return qp.QueryItems()
	}

	return nil
}

// BodyOf reports the request body and whether the request sends one.
func BodyOf(r Request) (map[string]any, bool) {
	bs, ok := r.(BodySender)
	if !ok {
		return nil, false
	}

	body := bs.Body()

	return body, body != nil
}

// StatusCodesOf returns the request's acceptable status codes,
// defaulting to [DefaultStatusCodes].
func StatusCodesOf(r Request) StatusCodes {
	if sa, ok := r.(StatusAcceptor); ok {
		if codes := sa.AcceptableStatusCodes(); codes != nil {
			return codes
		}
	}

	return DefaultStatusCodes
}

// ContentTypesOf returns the request's acceptable content types.
// Without an explicit override they come from the Accept header,
// split on commas; with no Accept header anything is acceptable.
func ContentTypesOf(r Request) []string {
	if ca, ok := r.(ContentTypeAcceptor); ok {
		if types := ca.AcceptableContentTypes(); len(types) > 0 {
			return types
		}
	}

	if accept, ok := headerValue(HeadersOf(r), "Accept"); ok {
		parts := strings.Split(accept, ",")
		types := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				types = append(types, p)
			}
		}
		if len(types) > 0 {
			return types
		}
	}

	return []string{"*/*"}
}

// ResolveURL parses the request endpoint and attaches its query items
// in order. Existing query components of the endpoint are replaced.
func ResolveURL(r Request) (*url.URL, error) {
	raw := r.Endpoint().URLString()

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &ConfigurationError{Endpoint: raw, Request: fmt.Sprintf("%T", r), Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &ConfigurationError{Endpoint: raw, Request: fmt.Sprintf("%T", r), Err: ErrInvalidEndpoint}
	}

	u.RawQuery = encodeQuery(QueryItemsOf(r))
	u.ForceQuery = false

	return u, nil
}

// ResolvedURL is ResolveURL for endpoints known to be valid. An invalid
// endpoint is a programming error, so it panics with a *ConfigurationError.
func ResolvedURL(r Request) *url.URL {
	u, err := ResolveURL(r)
	if err != nil {
		panic(err)
	}

	return u
}

// encodeQuery keeps the caller's order, unlike url.Values.Encode.
func encodeQuery(items []QueryItem) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(item.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(item.Value))
	}

	return b.String()
}

// headerValue looks key up case-insensitively.
func headerValue(headers map[string]string, key string) (string, bool) {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}

	return "", false
}
