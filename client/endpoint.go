package client

// Endpoint is the target URL of a request, kept as the raw string the
// caller wrote. Two endpoints are equal when their strings are equal.
type Endpoint string

// URLString returns the endpoint's raw URL string.
func (e Endpoint) URLString() string {
	return string(e)
}

// Join returns a new Endpoint with segment appended after a "/".
// The receiver is left untouched.
func (e Endpoint) Join(segment string) Endpoint {
	return Endpoint(string(e) + "/" + segment)
}

// JoinPath appends each segment to base in order.
//
//	JoinPath("https://api.example.com", "v1", "users") // https://api.example.com/v1/users
func JoinPath(base Endpoint, segments ...string) Endpoint {
	for _, s := range segments {
		base = base.Join(s)
	}

	return base
}
