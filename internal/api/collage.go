package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/breppy/breppy/internal/log"
)

// GrabCollageToken fetches collageURL and returns the value of the first
// input inside the #addtorrent element. found is false when the page has no
// such element, input or value; only transport failures are errors.
func (c *Client) GrabCollageToken(ctx context.Context, collageURL, tracker string) (token string, found bool, err error) {
	tc, err := c.cfg.Tracker(tracker)
	if err != nil {
		return "", false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, collageURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req, tc.Cookies)
	if err != nil {
		return "", false, err
	}

	token, found = parseCollageToken(resp.Body)
	if !found {
		log.Warn("api").
			Str("tracker", tracker).
			Str("url", collageURL).
			Int("status", resp.StatusCode).
			Msg("No collage token on page")
	}
	return token, found, nil
}

func parseCollageToken(body []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}

	input := doc.Find("#addtorrent").First().Find("input").First()
	value, exists := input.Attr("value")
	if !exists || value == "" {
		return "", false
	}
	return value, true
}

// Collage adds torrentURL to a collage on a current Luminance tracker. The
// form token is scraped from the collage page first and left out of the
// form when the page does not carry one.
func (c *Client) Collage(ctx context.Context, collageID int, torrentURL, tracker string) (*Response, error) {
	tc, err := c.cfg.Tracker(tracker)
	if err != nil {
		return nil, err
	}

	collagePath := fmt.Sprintf("/collage/%d", collageID)
	collageURL, err := resolve(tc.URL, collagePath)
	if err != nil {
		return nil, err
	}
	addURL, err := resolve(collageURL, collagePath+"/add")
	if err != nil {
		return nil, err
	}

	token, found, err := c.GrabCollageToken(ctx, collageURL, tracker)
	if err != nil {
		return nil, fmt.Errorf("grab collage token: %w", err)
	}

	form := url.Values{}
	if found {
		form.Set("token", token)
	}
	form.Set("url", torrentURL)

	log.Info("api").
		Str("tracker", tracker).
		Int("collage_id", collageID).
		Str("torrent_url", torrentURL).
		Bool("token", found).
		Msg("Adding torrent to collage")

	return c.postForm(ctx, addURL, form, tc.Cookies)
}

// LegacyCollage adds torrentURL to a collage on an old Luminance tracker,
// authenticating with the tracker's configured auth token.
func (c *Client) LegacyCollage(ctx context.Context, collageID int, torrentURL, tracker string) (*Response, error) {
	tc, err := c.cfg.Tracker(tracker)
	if err != nil {
		return nil, err
	}

	endpoint, err := resolve(tc.URL, "collages.php?id="+strconv.Itoa(collageID))
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("action", "add_torrent")
	form.Set("auth", tc.Auth)
	form.Set("collageid", strconv.Itoa(collageID))
	form.Set("url", torrentURL)

	log.Info("api").
		Str("tracker", tracker).
		Int("collage_id", collageID).
		Str("torrent_url", torrentURL).
		Msg("Adding torrent to legacy collage")

	return c.postForm(ctx, endpoint, form, tc.Cookies)
}
