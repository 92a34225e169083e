// Package client sends declaratively described HTTP requests through a
// swappable transport adaptor.
//
// # Describing Requests
//
// A request is any type with a verb and an [Endpoint]. Embed a verb type
// to fix the method, and implement the optional capabilities you need:
//
//	type listUsers struct {
//		client.GET
//		client.Decodes[[]User]
//		page int
//	}
//
//	func (listUsers) Endpoint() client.Endpoint {
//		return client.JoinPath("https://api.example.com", "v1", "users")
//	}
//
//	func (r listUsers) QueryItems() []client.QueryItem {
//		return []client.QueryItem{{Name: "page", Value: strconv.Itoa(r.page)}}
//	}
//
// Unless overridden, a request accepts status codes in [200,400) and the
// content types of its Accept header, or any content type without one.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options. Transport
// settings live on a [Configuration] that clients can share:
//
//	cfg, err := client.NewConfiguration(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//		client.WithDefaultDecoder(client.NewJSONDecoder(client.ConvertFromSnakeCase)),
//	)
//	c, err := client.Build(client.WithConfiguration(cfg))
//
// # Sending
//
// Every call has a callback form and a blocking form built on it:
//
//	c.Send(ctx, req, client.Immediate, func(body []byte, err error) { ... })
//	body, err := c.Do(ctx, req, client.Immediate)
//
//	client.SendDecoding[[]User](ctx, c, listUsers{}, q, func(users []User, err error) { ... })
//	users, err := client.DoDecoding[[]User](ctx, c, listUsers{}, q)
//
// Completions run exactly once on the given [Queue]. A decoding request
// uses its preferred decoder when it has one, and the configuration's
// default decoder otherwise. Use [IsDecodeError] to tell decode failures
// from adaptor failures; the latter are passed through unchanged.
//
// # Adaptors
//
// [HTTPAdaptor] is the net/http-backed default. Anything implementing
// [Adaptor], or just [DataSender] lifted with [AdaptorFrom], can replace
// it; see the clienttest package for a scripted stub.
package client
