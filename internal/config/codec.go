package config

import (
	"fmt"
	"net/url"

	"github.com/pelletier/go-toml/v2"
)

// The on-disk shape. Trackers are top level tables; cookies carry their
// variant under "type". Keys the decoder does not know are ignored.

type fileDoc struct {
	Emp  trackerDoc `toml:"Emp"`
	Ent  trackerDoc `toml:"Ent"`
	Pbay trackerDoc `toml:"Pbay"`
}

type trackerDoc struct {
	URL     *string    `toml:"url"`
	Auth    string     `toml:"auth"`
	Cookies cookiesDoc `toml:"cookies"`
	Payload Payload    `toml:"payload"`
}

type cookiesDoc struct {
	Type    CookieVariant `toml:"type"`
	Cid     *string       `toml:"cid,omitempty"`
	Sid     *string       `toml:"sid,omitempty"`
	Session *string       `toml:"session,omitempty"`
}

func (d *fileDoc) tracker(canonical string) *trackerDoc {
	switch canonical {
	case TrackerEmp:
		return &d.Emp
	case TrackerEnt:
		return &d.Ent
	case TrackerPbay:
		return &d.Pbay
	}
	return nil
}

// Marshal encodes cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	var doc fileDoc
	for _, name := range TrackerNames {
		td, err := newTrackerDoc(*cfg.tracker(name))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		*doc.tracker(name) = td
	}
	return toml.Marshal(doc)
}

// Unmarshal decodes a TOML document. Tracker tables missing from the
// document fall back to their defaults; a present table must carry a url and
// a cookies table with a valid "type". Tracker table names match
// case-insensitively, so [emp] configures Emp.
func Unmarshal(data []byte) (*Config, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}

	present := make(map[string]bool)
	for key := range tree {
		name, err := CanonicalName(key)
		if err != nil {
			continue
		}
		if present[name] {
			return nil, fmt.Errorf("decode %s: tracker table defined more than once", name)
		}
		present[name] = true
	}

	doc := fileDoc{
		Emp:  trackerDoc{Payload: DefaultPayload()},
		Ent:  trackerDoc{Payload: DefaultPayload()},
		Pbay: trackerDoc{Payload: DefaultPayload()},
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	cfg := Default()
	for _, name := range TrackerNames {
		if !present[name] {
			continue
		}
		tc, err := doc.tracker(name).trackerConfig()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		*cfg.tracker(name) = tc
	}
	return cfg, nil
}

func newTrackerDoc(tc TrackerConfig) (trackerDoc, error) {
	u := tc.URL
	td := trackerDoc{
		URL:     &u,
		Auth:    tc.Auth,
		Payload: tc.Payload,
	}

	switch c := tc.Cookies.(type) {
	case CurrentCookies:
		cid, sid := c.ClientID, c.SessionID
		td.Cookies = cookiesDoc{Type: VariantCurrent, Cid: &cid, Sid: &sid}
	case LegacyCookies:
		session := c.Session
		td.Cookies = cookiesDoc{Type: VariantLegacy, Session: &session}
	case nil:
		return trackerDoc{}, fmt.Errorf("no cookies set")
	default:
		return trackerDoc{}, fmt.Errorf("unsupported cookies %T", c)
	}
	return td, nil
}

func (td *trackerDoc) trackerConfig() (TrackerConfig, error) {
	if td.URL == nil {
		return TrackerConfig{}, fmt.Errorf("missing url")
	}
	if _, err := url.Parse(*td.URL); err != nil {
		return TrackerConfig{}, fmt.Errorf("invalid url: %w", err)
	}

	cookies, err := td.Cookies.cookies()
	if err != nil {
		return TrackerConfig{}, err
	}

	return TrackerConfig{
		URL:     *td.URL,
		Cookies: cookies,
		Payload: td.Payload,
		Auth:    td.Auth,
	}, nil
}

func (cd cookiesDoc) cookies() (Cookies, error) {
	switch cd.Type {
	case VariantCurrent:
		if cd.Session != nil {
			return nil, fmt.Errorf("cookies: %q does not take a session key", cd.Type)
		}
		return CurrentCookies{ClientID: deref(cd.Cid), SessionID: deref(cd.Sid)}, nil
	case VariantLegacy:
		if cd.Cid != nil || cd.Sid != nil {
			return nil, fmt.Errorf("cookies: %q does not take cid or sid keys", cd.Type)
		}
		return LegacyCookies{Session: deref(cd.Session)}, nil
	case "":
		return nil, fmt.Errorf("cookies: missing type")
	default:
		return nil, fmt.Errorf("cookies: invalid type %q", cd.Type)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
