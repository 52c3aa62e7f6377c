package overleaf

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // register cookie store finders
)

// DefaultHost is the hosted Overleaf instance.
const DefaultHost = "https://www.overleaf.com"

// SessionEnv overrides browser cookie discovery with an explicit session
// value, for headless machines with no browser profile.
const SessionEnv = "OVERLEAF_SESSION"

// DefaultTimeout bounds every HTTP exchange with Overleaf.
const DefaultTimeout = 60 * time.Second

const (
	sessionCookieName = "overleaf_session2"
	userAgent         = "Mozilla/5.0 (compatible; resume-editor/1.0)"
)

// Client talks to an Overleaf instance. Connect must succeed before any
// other method is called.
type Client struct {
	host    string
	http    *http.Client
	session *http.Cookie
}

// NewClient creates a client for the given Overleaf host. An empty host
// selects overleaf.com.
func NewClient(host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		host: host,
		http: &http.Client{
			Timeout: DefaultTimeout,
			// A dead session redirects to /login; surface that as an auth
			// failure instead of following it.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Host returns the Overleaf base URL the client talks to.
func (c *Client) Host() string {
	return c.host
}

// Connect locates the Overleaf session cookie and verifies it against the
// project dashboard. The cookie comes from OVERLEAF_SESSION when set,
// otherwise from the local browser cookie stores.
func (c *Client) Connect(ctx context.Context) error {
	cookie, err := c.findSessionCookie()
	if err != nil {
		return err
	}
	c.session = cookie

	// A round trip to the dashboard proves the session is alive.
	if _, err := c.fetchDashboard(ctx); err != nil {
		c.session = nil
		return err
	}
	return nil
}

// Connected reports whether Connect has succeeded.
func (c *Client) Connected() bool {
	return c.session != nil
}

func (c *Client) findSessionCookie() (*http.Cookie, error) {
	if v := os.Getenv(SessionEnv); v != "" {
		return &http.Cookie{Name: sessionCookieName, Value: v}, nil
	}

	u, err := url.Parse(c.host)
	if err != nil {
		return nil, &AuthError{Message: fmt.Sprintf("invalid host %q", c.host), Cause: err}
	}

	cookies := kooky.ReadCookies(
		kooky.Valid,
		kooky.DomainHasSuffix(u.Hostname()),
		kooky.Name(sessionCookieName),
	)
	if len(cookies) == 0 {
		return nil, &AuthError{
			Message: fmt.Sprintf("no %s cookie found for %s in any browser", sessionCookieName, u.Hostname()),
		}
	}
	return &http.Cookie{Name: sessionCookieName, Value: cookies[0].Value}, nil
}

// get performs an authenticated GET against an Overleaf path.
// The caller owns the response body.
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	fullURL := c.host + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &RequestError{URL: fullURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)
	if c.session != nil {
		req.AddCookie(c.session)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{URL: fullURL, Message: "HTTP request failed", Cause: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp, nil
	case resp.StatusCode == http.StatusFound || resp.StatusCode == http.StatusUnauthorized:
		_ = resp.Body.Close()
		return nil, &AuthError{Message: "Overleaf session rejected (logged out or expired)"}
	default:
		_ = resp.Body.Close()
		return nil, &RequestError{
			URL:        fullURL,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
}
