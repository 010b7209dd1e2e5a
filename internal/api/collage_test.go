package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/breppy/breppy/internal/config"
)

const collagePage = `<html><body>
<div id="content">
  <form id="addtorrent" method="post">
    <input type="hidden" name="token" value="tok-123">
    <input type="text" name="url">
  </form>
</div>
</body></html>`

func TestParseCollageToken(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantToken string
		wantFound bool
	}{
		{name: "token present", html: collagePage, wantToken: "tok-123", wantFound: true},
		{name: "no addtorrent element", html: `<html><body><form><input value="x"></form></body></html>`},
		{name: "no input", html: `<div id="addtorrent"><p>closed</p></div>`},
		{name: "input without value", html: `<div id="addtorrent"><input name="token"></div>`},
		{name: "empty value", html: `<div id="addtorrent"><input name="token" value=""></div>`},
		{name: "empty body", html: ``},
		{
			name:      "first input wins",
			html:      `<div id="addtorrent"><span><input value="a"></span><input value="b"></div>`,
			wantToken: "a",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, found := parseCollageToken([]byte(tt.html))
			if token != tt.wantToken || found != tt.wantFound {
				t.Errorf("parseCollageToken() = (%q, %v), want (%q, %v)", token, found, tt.wantToken, tt.wantFound)
			}
		})
	}
}

func TestGrabCollageToken(t *testing.T) {
	var cid string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid = cookieValue(r, "cid")
		if r.URL.Path != "/collage/42" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, collagePage)
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL), ts.Client())

	token, found, err := client.GrabCollageToken(context.Background(), ts.URL+"/collage/42", "Emp")
	if err != nil {
		t.Fatalf("GrabCollageToken() error = %v", err)
	}
	if !found || token != "tok-123" {
		t.Errorf("GrabCollageToken() = (%q, %v), want (tok-123, true)", token, found)
	}
	if cid != "emp-cid" {
		t.Errorf("cid cookie = %q", cid)
	}

	_, found, err = client.GrabCollageToken(context.Background(), ts.URL+"/elsewhere", "Emp")
	if err != nil || found {
		t.Errorf("GrabCollageToken(404 page) = (found %v, err %v), want absent without error", found, err)
	}
}

func TestCollage(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		wantToken []string
	}{
		{name: "with token", page: collagePage, wantToken: []string{"tok-123"}},
		{name: "without token", page: `<html></html>`, wantToken: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				addMethod string
				addCookie string
				form      map[string][]string
			)
			mux := http.NewServeMux()
			mux.HandleFunc("/collage/42", func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.page)
			})
			mux.HandleFunc("/collage/42/add", func(w http.ResponseWriter, r *http.Request) {
				addMethod = r.Method
				addCookie = cookieValue(r, "sid")
				if err := r.ParseForm(); err != nil {
					t.Errorf("ParseForm: %v", err)
				}
				form = r.PostForm
				_, _ = io.WriteString(w, "added")
			})
			ts := httptest.NewServer(mux)
			defer ts.Close()

			resp, err := NewClient(testConfig(ts.URL), ts.Client()).
				Collage(context.Background(), 42, "https://emp.example/torrents.php?id=1", "Emp")
			if err != nil {
				t.Fatalf("Collage() error = %v", err)
			}

			if string(resp.Body) != "added" {
				t.Errorf("Body = %q", resp.Body)
			}
			if addMethod != http.MethodPost {
				t.Errorf("add method = %q, want POST", addMethod)
			}
			if addCookie != "emp-sid" {
				t.Errorf("sid cookie = %q", addCookie)
			}
			if got := form["url"]; len(got) != 1 || got[0] != "https://emp.example/torrents.php?id=1" {
				t.Errorf("url field = %v", got)
			}
			got := form["token"]
			if len(got) != len(tt.wantToken) || (len(got) == 1 && got[0] != tt.wantToken[0]) {
				t.Errorf("token field = %v, want %v", got, tt.wantToken)
			}
		})
	}
}

func TestLegacyCollage(t *testing.T) {
	var (
		gotPath, gotQuery, gotSession string
		form                          map[string][]string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotSession = cookieValue(r, "session")
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		form = r.PostForm
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	resp, err := NewClient(testConfig(ts.URL), ts.Client()).
		LegacyCollage(context.Background(), 9, "https://pbay.example/torrents.php?id=3", "Pbay")
	if err != nil {
		t.Fatalf("LegacyCollage() error = %v", err)
	}

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", resp.StatusCode)
	}
	if gotPath != "/collages.php" || gotQuery != "id=9" {
		t.Errorf("request = %s?%s", gotPath, gotQuery)
	}
	if gotSession != "pbay-session" {
		t.Errorf("session cookie = %q", gotSession)
	}

	want := map[string]string{
		"action":    "add_torrent",
		"auth":      "pbay-collage-auth",
		"collageid": "9",
		"url":       "https://pbay.example/torrents.php?id=3",
	}
	for k, v := range want {
		if got := form[k]; len(got) != 1 || got[0] != v {
			t.Errorf("form[%q] = %v, want %q", k, got, v)
		}
	}
}

func TestCollageUnknownTracker(t *testing.T) {
	client := NewClient(config.Default(), nil)

	if _, err := client.Collage(context.Background(), 1, "u", "Nope"); !errors.Is(err, config.ErrUnknownTracker) {
		t.Errorf("Collage() error = %v, want ErrUnknownTracker", err)
	}
	if _, err := client.LegacyCollage(context.Background(), 1, "u", "Nope"); !errors.Is(err, config.ErrUnknownTracker) {
		t.Errorf("LegacyCollage() error = %v, want ErrUnknownTracker", err)
	}
	if _, _, err := client.GrabCollageToken(context.Background(), "http://x", "Nope"); !errors.Is(err, config.ErrUnknownTracker) {
		t.Errorf("GrabCollageToken() error = %v, want ErrUnknownTracker", err)
	}
}
