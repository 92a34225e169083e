// Package throttle provides the [http.RoundTripper] behind the client's
// throttle transport setting. Requests are rate-limited with a token
// bucket from [golang.org/x/time/rate].
//
// The client installs it when the configuration carries a throttle:
//
//	cfg, err := client.NewConfiguration(client.WithThrottle(10, 5))
//
// It can also wrap any transport directly:
//
//	rt, err := throttle.NewRoundTripper(
//		throttle.Config{RPS: 10, Burst: 5},
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//
// Once the burst is spent, requests block until a token becomes available
// or the request context ends.
package throttle
