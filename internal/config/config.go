package config

import (
	"strconv"
	"strings"
)

// Default tracker origins.
const (
	EmpURL  = "https://www.empornium.sx"
	EntURL  = "https://www.enthralled.me"
	PbayURL = "https://www.pornbay.org"

	// LegacyTrackerURL is the only origin still running the old Luminance
	// cookie scheme.
	LegacyTrackerURL = PbayURL
)

// Canonical tracker names as they appear in the config file.
const (
	TrackerEmp  = "Emp"
	TrackerEnt  = "Ent"
	TrackerPbay = "Pbay"
)

// TrackerNames lists the known trackers in config file order.
var TrackerNames = []string{TrackerEmp, TrackerEnt, TrackerPbay}

// Payload holds the default upload form fields for a tracker
type Payload struct {
	// Auth is the per-user form token expected by upload.php
	Auth string `toml:"auth"`

	// CheckOnly marks a dupe-check submission; it is stripped for real uploads
	CheckOnly string `toml:"checkonly"`

	Submit    string `toml:"submit"`
	GenreTags string `toml:"genre_tags"`

	// FontFont and FontSize select the description editor font, -1 meaning unset
	FontFont int `toml:"fontfont"`
	FontSize int `toml:"fontsize"`

	MaxFileSize int `toml:"MAX_FILE_SIZE"`
	Anonymous   int `toml:"anonymous"`
}

// DefaultPayload returns the payload every tracker starts with.
func DefaultPayload() Payload {
	return Payload{
		Auth:        "",
		CheckOnly:   "check for dupes",
		Submit:      "true",
		GenreTags:   "---",
		FontFont:    -1,
		FontSize:    -1,
		MaxFileSize: 2097152,
		Anonymous:   1,
	}
}

// Form returns the payload as string form fields keyed by their wire names.
func (p Payload) Form() map[string]string {
	return map[string]string{
		"auth":          p.Auth,
		"checkonly":     p.CheckOnly,
		"submit":        p.Submit,
		"genre_tags":    p.GenreTags,
		"fontfont":      strconv.Itoa(p.FontFont),
		"fontsize":      strconv.Itoa(p.FontSize),
		"MAX_FILE_SIZE": strconv.Itoa(p.MaxFileSize),
		"anonymous":     strconv.Itoa(p.Anonymous),
	}
}

// TrackerConfig holds everything needed to talk to a single tracker
type TrackerConfig struct {
	// URL is the tracker origin, e.g. https://www.empornium.sx
	URL string

	// Cookies authenticate every request; the variant depends on the
	// tracker software generation
	Cookies Cookies

	// Payload holds the upload form defaults
	Payload Payload

	// Auth is the token posted by the legacy collage form
	Auth string
}

// GuessTracker builds a default TrackerConfig for url, picking the cookie
// variant from the origin.
func GuessTracker(url string) TrackerConfig {
	var cookies Cookies = CurrentCookies{}
	if url == LegacyTrackerURL {
		cookies = LegacyCookies{}
	}

	return TrackerConfig{
		URL:     url,
		Cookies: cookies,
		Payload: DefaultPayload(),
	}
}

// Config maps every known tracker to its settings. It is loaded once at
// startup and passed explicitly to whatever needs it.
type Config struct {
	Emp  TrackerConfig
	Ent  TrackerConfig
	Pbay TrackerConfig
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Emp:  GuessTracker(EmpURL),
		Ent:  GuessTracker(EntURL),
		Pbay: GuessTracker(PbayURL),
	}
}

// CanonicalName maps a tracker name to its config key. Matching is
// case-insensitive, so "PBay" and "Pbay" name the same tracker.
func CanonicalName(name string) (string, error) {
	for _, known := range TrackerNames {
		if strings.EqualFold(name, known) {
			return known, nil
		}
	}
	return "", NewUnknownTrackerError(name)
}

// Tracker returns the settings for the named tracker.
func (c *Config) Tracker(name string) (TrackerConfig, error) {
	canonical, err := CanonicalName(name)
	if err != nil {
		return TrackerConfig{}, err
	}
	return *c.tracker(canonical), nil
}

func (c *Config) tracker(canonical string) *TrackerConfig {
	switch canonical {
	case TrackerEmp:
		return &c.Emp
	case TrackerEnt:
		return &c.Ent
	case TrackerPbay:
		return &c.Pbay
	}
	return nil
}
