package client_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/firework/client"
	"github.com/adamwoolhether/firework/client/throttle"
)

func TestNewConfiguration_Options(t *testing.T) {
	testCases := map[string]struct {
		opts   []client.ConfigOption
		expErr bool
	}{
		"no options":            {},
		"timeout":               {opts: []client.ConfigOption{client.WithTimeout(time.Second)}},
		"negative timeout":      {opts: []client.ConfigOption{client.WithTimeout(-time.Second)}, expErr: true},
		"nil http client":       {opts: []client.ConfigOption{client.WithHTTPClient(nil)}, expErr: true},
		"nil transport":         {opts: []client.ConfigOption{client.WithTransport(nil)}, expErr: true},
		"nil decoder":           {opts: []client.ConfigOption{client.WithDefaultDecoder(nil)}, expErr: true},
		"zero throttle rps":     {opts: []client.ConfigOption{client.WithThrottle(0, 1)}, expErr: true},
		"zero throttle burst":   {opts: []client.ConfigOption{client.WithThrottle(1, 0)}, expErr: true},
		"valid throttle":        {opts: []client.ConfigOption{client.WithThrottle(10, 5)}},
		"no follow redirects":   {opts: []client.ConfigOption{client.WithNoFollowRedirects()}},
		"user agent":            {opts: []client.ConfigOption{client.WithUserAgent("test/1.0")}},
		"invalid full settings": {opts: []client.ConfigOption{client.WithTransportSettings(client.TransportSettings{Timeout: -1})}, expErr: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg, err := client.NewConfiguration(tc.opts...)
			if tc.expErr {
				if err == nil {
					t.Fatal("exp error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("exp no error, got: %v", err)
			}
			if cfg.DefaultDecoder() == nil {
				t.Error("exp a default decoder")
			}
		})
	}
}

func TestConfiguration_TransportSettingsAreCopied(t *testing.T) {
	cfg, err := client.NewConfiguration(
		client.WithTimeout(5*time.Second),
		client.WithUserAgent("test/1.0"),
		client.WithThrottle(10, 5),
	)
	if err != nil {
		t.Fatalf("creating configuration: %v", err)
	}

	got := cfg.TransportSettings()
	got.UserAgent = "changed"
	got.Throttle.RPS = 99

	again := cfg.TransportSettings()
	if again.UserAgent != "test/1.0" {
		t.Errorf("exp user agent to be unchanged, got %q", again.UserAgent)
	}
	if diff := cmp.Diff(&throttle.Config{RPS: 10, Burst: 5}, again.Throttle); diff != "" {
		t.Errorf("throttle mismatch (-want +got):\n%s", diff)
	}
	if again.Timeout != 5*time.Second {
		t.Errorf("exp timeout 5s, got %v", again.Timeout)
	}
}

func TestConfiguration_SetTransportSettings(t *testing.T) {
	cfg := client.DefaultConfiguration()

	if err := cfg.SetTransportSettings(client.TransportSettings{Throttle: &throttle.Config{}}); !errors.Is(err, throttle.ErrMustNotBeZero) {
		t.Fatalf("exp ErrMustNotBeZero, got: %v", err)
	}

	if err := cfg.SetTransportSettings(client.TransportSettings{UserAgent: "next/2.0", NoFollowRedirects: true}); err != nil {
		t.Fatalf("setting transport settings: %v", err)
	}

	got := cfg.TransportSettings()
	if got.UserAgent != "next/2.0" || !got.NoFollowRedirects {
		t.Errorf("exp updated settings, got %+v", got)
	}
}

func TestConfiguration_DefaultDecoder(t *testing.T) {
	cfg := client.DefaultConfiguration()

	if _, ok := cfg.DefaultDecoder().(*client.JSONDecoder); !ok {
		t.Fatalf("exp *JSONDecoder by default, got %T", cfg.DefaultDecoder())
	}

	custom := client.NewJSONDecoder(client.ConvertFromSnakeCase)
	cfg.SetDefaultDecoder(custom)
	if cfg.DefaultDecoder() != client.Decoder(custom) {
		t.Errorf("exp custom decoder, got %T", cfg.DefaultDecoder())
	}

	cfg.SetDefaultDecoder(nil)
	if d, ok := cfg.DefaultDecoder().(*client.JSONDecoder); !ok || d.Keys != client.UseDefaultKeys {
		t.Errorf("exp nil to restore a plain *JSONDecoder, got %#v", cfg.DefaultDecoder())
	}
}

func TestDefaultConfiguration_Independent(t *testing.T) {
	a := client.DefaultConfiguration()
	b := client.DefaultConfiguration()

	a.SetDefaultDecoder(client.NewJSONDecoder(client.ConvertFromSnakeCase))

	if d := b.DefaultDecoder().(*client.JSONDecoder); d.Keys != client.UseDefaultKeys {
		t.Error("exp configurations not to share their default decoder")
	}
}

func TestLoadTransportSettings(t *testing.T) {
	testCases := map[string]struct {
		doc    string
		exp    client.TransportSettings
		expErr bool
	}{
		"empty": {
			doc: ``,
			exp: client.TransportSettings{},
		},
		"full": {
			doc: `
timeout = "10s"
user_agent = "myapp/1.0"
no_follow_redirects = true

[throttle]
rps = 10
burst = 5
`,
			exp: client.TransportSettings{
				Timeout:           10 * time.Second,
				UserAgent:         "myapp/1.0",
				NoFollowRedirects: true,
				Throttle:          &throttle.Config{RPS: 10, Burst: 5},
			},
		},
		"bad duration": {
			doc:    `timeout = "ten seconds"`,
			expErr: true,
		},
		"negative duration": {
			doc:    `timeout = "-1s"`,
			expErr: true,
		},
		"unknown key": {
			doc:    `retries = 3`,
			expErr: true,
		},
		"zero throttle": {
			doc:    "[throttle]\nrps = 0\nburst = 1\n",
			expErr: true,
		},
		"malformed": {
			doc:    `timeout = `,
			expErr: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := client.LoadTransportSettings(strings.NewReader(tc.doc))
			if tc.expErr {
				if err == nil {
					t.Fatalf("exp error, got settings %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("exp no error, got: %v", err)
			}

			if diff := cmp.Diff(tc.exp, got, cmp.Comparer(func(a, b http.RoundTripper) bool { return a == b })); diff != "" {
				t.Errorf("settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
