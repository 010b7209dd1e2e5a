package config

import "net/http"

// CookieVariant is the discriminator stored under the cookies "type" key.
type CookieVariant string

const (
	// VariantCurrent is used by current Luminance trackers (cid + sid).
	VariantCurrent CookieVariant = "new_luminance"

	// VariantLegacy is used by old Luminance trackers (single session).
	VariantLegacy CookieVariant = "old_luminance"
)

// Cookies is the session cookie set of a tracker. It is implemented only by
// CurrentCookies and LegacyCookies.
type Cookies interface {
	// Variant reports the discriminator written to the config file
	Variant() CookieVariant

	// HTTPCookies returns the cookies to attach to each request
	HTTPCookies() []*http.Cookie

	isCookies()
}

// CurrentCookies holds the client id and session id cookies.
type CurrentCookies struct {
	ClientID  string
	SessionID string
}

// Variant returns VariantCurrent
func (CurrentCookies) Variant() CookieVariant { return VariantCurrent }

// HTTPCookies returns the cid and sid cookies
func (c CurrentCookies) HTTPCookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: "cid", Value: c.ClientID},
		{Name: "sid", Value: c.SessionID},
	}
}

func (CurrentCookies) isCookies() {}

// LegacyCookies holds the single session cookie.
type LegacyCookies struct {
	Session string
}

// Variant returns VariantLegacy
func (LegacyCookies) Variant() CookieVariant { return VariantLegacy }

// HTTPCookies returns the session cookie
func (c LegacyCookies) HTTPCookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: "session", Value: c.Session},
	}
}

func (LegacyCookies) isCookies() {}
