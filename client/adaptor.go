package client

import (
	"context"
	"errors"
)

// Completion receives the outcome of one request. It is called exactly once.
type Completion func(body []byte, err error)

// DataSender performs a request and reports a body that must be present.
// A successful response with no body is reported as [ErrEmptyResponse],
// except for 204, 205 and HEAD responses, which succeed with an empty slice.
//
// Implementations validate the response with [ValidateResponse] before
// completing, and dispatch completion on q exactly once.
type DataSender interface {
	SendData(ctx context.Context, r Request, q Queue, completion Completion)
}

// Adaptor is the transport boundary of a [Client].
//
// Send is the lenient form of SendData: a response without a body
// completes with a nil slice instead of failing. Adaptors implementing only
// SendData can be lifted with [AdaptorFrom].
//
// The error channel is the adaptor's own. It must be able to express
// transport failures, unacceptable status codes and unacceptable content
// types; [HTTPAdaptor] uses [TransportError], [UnexpectedStatusError] and
// [UnacceptableContentTypeError].
type Adaptor interface {
	DataSender
	Send(ctx context.Context, r Request, q Queue, completion Completion)
}

// AdaptorFrom derives an [Adaptor] from a [DataSender]. The derived Send
// turns an empty body, or ErrEmptyResponse, into a nil body and forwards
// every other outcome unchanged.
func AdaptorFrom(d DataSender) Adaptor {
	if a, ok := d.(Adaptor); ok {
		return a
	}

	return derived{DataSender: d}
}

type derived struct {
	DataSender
}

func (d derived) Send(ctx context.Context, r Request, q Queue, completion Completion) {
	d.SendData(ctx, r, q, func(body []byte, err error) {
		if errors.Is(err, ErrEmptyResponse) {
			err = nil
		}
		if err == nil && len(body) == 0 {
			body = nil
		}
		completion(body, err)
	})
}
