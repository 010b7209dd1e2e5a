package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/breppy/breppy/internal/config"
	"github.com/breppy/breppy/internal/log"
)

// TorrentContentType is sent for the uploaded .torrent part
const TorrentContentType = "application/x-bittorrent"

// Client talks to the configured trackers. It carries no state besides the
// read-only configuration, so one Client may be shared between goroutines.
type Client struct {
	cfg    *config.Config
	client *http.Client
}

// NewClient creates a tracker client. A nil httpClient uses a plain
// http.Client without a timeout; callers wanting one should pass their own.
func NewClient(cfg *config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		cfg:    cfg,
		client: httpClient,
	}
}

// Response is the raw tracker reply. Status codes are never interpreted.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte

	// URL is the final request URL after redirects
	URL string
}

// Build uploads the torrent at path to tracker. An empty payload sends the
// tracker's default form, which still carries the dupe-check marker.
func (c *Client) Build(ctx context.Context, path, tracker string, payload map[string]string) (*Response, error) {
	tc, err := c.cfg.Tracker(tracker)
	if err != nil {
		return nil, err
	}

	if len(payload) == 0 {
		payload = tc.Payload.Form()
	}

	torrent, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open torrent: %w", err)
	}
	defer torrent.Close()

	body, contentType, err := multipartBody(payload, filepath.Base(path), torrent)
	if err != nil {
		return nil, fmt.Errorf("build upload body: %w", err)
	}

	endpoint, err := resolve(tc.URL, "/upload.php")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	log.Info("api").
		Str("tracker", tracker).
		Str("file", filepath.Base(path)).
		Str("url", endpoint).
		Msg("Uploading torrent")

	return c.do(req, tc.Cookies)
}

// do attaches cookies, sends req and reads the whole body.
func (c *Client) do(req *http.Request, cookies config.Cookies) (*Response, error) {
	for _, cookie := range cookies.HTTPCookies() {
		req.AddCookie(cookie)
	}

	log.Debug("api").
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("Sending request")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	log.Debug("api").
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Int("size", len(body)).
		Msg("Received response")

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       body,
		URL:        resp.Request.URL.String(),
	}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// multipartBody writes fields in key order followed by the torrent part.
func multipartBody(fields map[string]string, filename string, torrent io.Reader) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := writer.WriteField(k, fields[k]); err != nil {
			return nil, "", err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file_input"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", TorrentContentType)
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, torrent); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// resolve joins ref onto the tracker origin the way a browser would.
func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid tracker url %q: %w", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}

// postForm sends an urlencoded form with the tracker cookies.
func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, cookies config.Cookies) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, cookies)
}
