package client_test

import (
	"testing"

	"github.com/adamwoolhether/firework/client"
)

func TestEndpoint_Equality(t *testing.T) {
	testCases := map[string]struct {
		a, b  client.Endpoint
		equal bool
	}{
		"same string":        {a: "https://www.sample.com", b: "https://www.sample.com", equal: true},
		"trailing slash":     {a: "https://www.sample.com", b: "https://www.sample.com/", equal: false},
		"different host":     {a: "https://www.sample.com", b: "https://sample.com", equal: false},
		"literal vs convert": {a: "https://www.sample.com", b: client.Endpoint("https://www.sample.com"), equal: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := tc.a == tc.b; got != tc.equal {
				t.Errorf("exp equal=%v for %q and %q", tc.equal, tc.a, tc.b)
			}
		})
	}
}

func TestEndpoint_Join(t *testing.T) {
	base := client.Endpoint("https://www.sample.com")

	joined := base.Join("some").Join("api")
	if joined != "https://www.sample.com/some/api" {
		t.Errorf("exp joined endpoint %q, got %q", "https://www.sample.com/some/api", joined)
	}

	if base != "https://www.sample.com" {
		t.Errorf("join must not modify the base, got %q", base)
	}

	if got := client.JoinPath(base, "some", "api"); got != joined {
		t.Errorf("exp JoinPath %q, got %q", joined, got)
	}

	if got := client.JoinPath(base); got != base {
		t.Errorf("exp JoinPath without segments to return base, got %q", got)
	}
}

func TestEndpoint_JoinConcatenates(t *testing.T) {
	for _, e := range []client.Endpoint{"", "https://a.b", "https://a.b/", "relative", "https://a.b?x=1"} {
		got := e.Join("a").Join("b").URLString()
		if exp := e.URLString() + "/a/b"; got != exp {
			t.Errorf("exp %q, got %q", exp, got)
		}
	}
}
