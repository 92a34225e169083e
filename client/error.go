package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is joined with [ErrUnexpectedStatusCode] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
	// ErrUnacceptableContentType is the sentinel error wrapped by [UnacceptableContentTypeError].
	ErrUnacceptableContentType = errors.New("unacceptable content type")
	// ErrTransport is the sentinel error wrapped by [TransportError].
	ErrTransport = errors.New("transport failure")
	// ErrEmptyResponse is reported by [DataSender.SendData] when a response
	// that must carry a body arrives without one.
	ErrEmptyResponse = errors.New("response body is empty")
	// ErrDecode is the sentinel error wrapped by [DecodeError].
	ErrDecode = errors.New("decoding failed")
	// ErrInvalidEndpoint is wrapped by [ConfigurationError] when an endpoint
	// parses but is not an absolute URL.
	ErrInvalidEndpoint = errors.New("endpoint is not an absolute URL")
)

// UnexpectedStatusError is returned when the HTTP response status code
// is not among the request's acceptable status codes.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

// UnacceptableContentTypeError is returned when the response Content-Type
// matches none of the request's acceptable content types.
type UnacceptableContentTypeError struct {
	ContentType string
	Acceptable  []string
}

func (e *UnacceptableContentTypeError) Error() string {
	return fmt.Sprintf("%v: %q, acceptable: %s", ErrUnacceptableContentType, e.ContentType, strings.Join(e.Acceptable, ", "))
}

func (e *UnacceptableContentTypeError) Unwrap() error {
	return ErrUnacceptableContentType
}

// TransportError reports a failure to complete the exchange at all:
// connection errors, timeouts, cancelled contexts, unreadable bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrTransport, e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// DecodeError reports a mismatch between the received bytes and the
// expected response shape. Field names the offending JSON field, if known.
type DecodeError struct {
	Type  string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: %s.%s: %v", ErrDecode, e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrDecode, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// IsDecodeError reports whether err came from the decode step rather than
// from the adaptor.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// ConfigurationError signals a malformed request definition, such as an
// endpoint that is not a valid URL. It is raised as a panic: correct
// code never produces one.
type ConfigurationError struct {
	Endpoint string
	Request  string
	Err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%q is an invalid URL, check the endpoint of %s: %v", e.Endpoint, e.Request, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
