package client

import (
	"fmt"
	"io"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/adamwoolhether/firework/client/throttle"
)

// settingsFile is the TOML shape of [TransportSettings]:
//
//	timeout = "10s"
//	user_agent = "myapp/1.0"
//	no_follow_redirects = true
//
//	[throttle]
//	rps = 10
//	burst = 5
type settingsFile struct {
	Timeout           string           `toml:"timeout"`
	UserAgent         string           `toml:"user_agent"`
	NoFollowRedirects bool             `toml:"no_follow_redirects"`
	Throttle          *throttle.Config `toml:"throttle"`
}

// LoadTransportSettings decodes TOML transport settings from r. Unknown
// keys are rejected. Settings that cannot be expressed in a file, such as
// a custom transport, are left zero.
func LoadTransportSettings(r io.Reader) (TransportSettings, error) {
	var f settingsFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&f); err != nil {
		return TransportSettings{}, fmt.Errorf("decoding transport settings: %w", err)
	}

	s := TransportSettings{
		UserAgent:         f.UserAgent,
		NoFollowRedirects: f.NoFollowRedirects,
		Throttle:          f.Throttle,
	}

	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return TransportSettings{}, fmt.Errorf("parsing timeout %q: %w", f.Timeout, err)
		}
		s.Timeout = d
	}

	if err := s.Validate(); err != nil {
		return TransportSettings{}, err
	}

	return s, nil
}
