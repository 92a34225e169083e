// Package clienttest provides deterministic collaborators for testing code
// built on [client.Client]: a scripted adaptor and an instrumented decoder.
package clienttest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adamwoolhether/firework/client"
)

// Result is the scripted outcome of a [StubAdaptor].
type Result struct {
	Body []byte
	Err  error
}

// Success scripts a successful response carrying body.
func Success(body string) Result {
	return Result{Body: []byte(body)}
}

// Failure scripts a failed exchange.
func Failure(err error) Result {
	return Result{Err: err}
}

// StubAdaptor completes every request with its scripted Result without
// touching the network. It only implements SendData; the Send form comes
// from [client.AdaptorFrom], as returned by [StubAdaptor.Adaptor].
type StubAdaptor struct {
	// Delay postpones each completion.
	Delay time.Duration

	mu       sync.Mutex
	result   Result
	requests []client.Request

	calls atomic.Int64
}

// NewStubAdaptor returns a StubAdaptor that always completes with result.
func NewStubAdaptor(result Result) *StubAdaptor {
	return &StubAdaptor{result: result}
}

// Adaptor lifts s to a full [client.Adaptor].
func (s *StubAdaptor) Adaptor() client.Adaptor {
	return client.AdaptorFrom(s)
}

// SetResult changes the scripted outcome for subsequent requests.
func (s *StubAdaptor) SetResult(result Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
}

// SendData implements [client.DataSender]. Completion is dispatched on q
// from a new goroutine, as a network-backed adaptor would.
func (s *StubAdaptor) SendData(_ context.Context, r client.Request, q client.Queue, completion client.Completion) {
	s.calls.Add(1)

	s.mu.Lock()
	s.requests = append(s.requests, r)
	result := s.result
	s.mu.Unlock()

	if q == nil {
		q = client.Immediate
	}

	go func() {
		if s.Delay > 0 {
			time.Sleep(s.Delay)
		}

		var body []byte
		if result.Body != nil {
			body = append([]byte(nil), result.Body...)
		}

		q.Dispatch(func() {
			completion(body, result.Err)
		})
	}()
}

// Calls returns how many requests the adaptor has received.
func (s *StubAdaptor) Calls() int {
	return int(s.calls.Load())
}

// Requests returns the requests received so far, oldest first.
func (s *StubAdaptor) Requests() []client.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]client.Request(nil), s.requests...)
}

// CountingDecoder wraps a decoder and counts its invocations.
type CountingDecoder struct {
	Decoder client.Decoder

	calls atomic.Int64
}

// NewCountingDecoder wraps d; a nil d means a plain [client.JSONDecoder].
func NewCountingDecoder(d client.Decoder) *CountingDecoder {
	if d == nil {
		d = &client.JSONDecoder{}
	}

	return &CountingDecoder{Decoder: d}
}

// Decode implements [client.Decoder].
func (d *CountingDecoder) Decode(data []byte, v any) error {
	d.calls.Add(1)
	return d.Decoder.Decode(data, v)
}

// Calls returns how many times Decode ran.
func (d *CountingDecoder) Calls() int {
	return int(d.calls.Load())
}
