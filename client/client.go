// Package client is an SDK for the Blue Billywig video management platform
// (VMS) HTTP API.
//
// A Client authenticates with the VMS challenge-response handshake, checks
// and ends the resulting session, searches the media library and builds
// image and player URLs. The session lives on the server and is referenced
// through the cookie jar of the client's transport, so every call that
// depends on it must go through the same Client. A Client is not meant to be
// shared between goroutines.
package client

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"

	"github.com/domdoescode/blue-billywig/client/internal/api"
	"github.com/domdoescode/blue-billywig/client/internal/types"
	"github.com/domdoescode/blue-billywig/internal/logger"
)

// DefaultBaseURL is the VMS host used when no base URL is configured.
const DefaultBaseURL = "http://trial.bbvms.com"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL string
	http    *http.Client
	rest    *resty.Client
	log     zerolog.Logger
	timeout time.Duration

	debug    bool
	registry prometheus.Registerer
	metrics  *metrics
}

// New constructs a Client. Without options it talks to DefaultBaseURL with
// its own cookie jar and logs to stderr.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{},
		log:     logger.NewConsole("bbvms-client", os.Stderr),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	if c.debug {
		c.log = c.log.Level(zerolog.DebugLevel)
		c.http.Transport = &debugTransport{base: c.http.Transport, log: c.log}
	}

	m, err := newMetrics(c.registry)
	if err != nil {
		return nil, err
	}
	c.metrics = m

	c.rest = newRestClient(c.http, c.log)
	return c, nil
}

// BaseURL returns the VMS base URL without trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// withLogger attaches the client's logger so the api layer logs through it.
func (c *Client) withLogger(ctx context.Context) context.Context {
	return c.log.WithContext(ctx)
}

// --------------------------------------------------------------------
// Authentication - delegated to internal/api
// --------------------------------------------------------------------

// GetRandom fetches a one-time token for AuthenticateWithToken.
func (c *Client) GetRandom(ctx context.Context) (token string, err error) {
	defer c.metrics.observe("getRandom", time.Now(), &err)
	return api.GetRandom(c.withLogger(ctx), c.rest, c.baseURL)
}

// Authenticate fetches a fresh token and logs in with it. On success the
// session cookie is kept for later calls on c.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*User, error) {
	token, err := c.GetRandom(ctx)
	if err != nil {
		return nil, err
	}
	return c.AuthenticateWithToken(ctx, username, password, token)
}

// AuthenticateWithToken logs in using a token previously obtained from
// GetRandom. A rejected login returns an error matching ErrNotAuthenticated.
func (c *Client) AuthenticateWithToken(ctx context.Context, username, password, token string) (user *User, err error) {
	defer c.metrics.observe("authenticate", time.Now(), &err)
	return api.Authenticate(c.withLogger(ctx), c.rest, c.baseURL, username, password, token)
}

// HashPassword derives the token-salted password hash sent on login.
func HashPassword(password, token string) string {
	return api.HashPassword(password, token)
}

// --------------------------------------------------------------------
// Session - delegated to internal/api
// --------------------------------------------------------------------

// CheckSession reports whether the server holds a live session for c.
// No session is a false result, not an error.
func (c *Client) CheckSession(ctx context.Context) (exists bool, err error) {
	defer c.metrics.observe("checkSession", time.Now(), &err)
	return api.CheckSession(c.withLogger(ctx), c.rest, c.baseURL)
}

// LogOff ends the session. Logging off without a live session is an error.
func (c *Client) LogOff(ctx context.Context) (err error) {
	defer c.metrics.observe("logOff", time.Now(), &err)
	return api.LogOff(c.withLogger(ctx), c.rest, c.baseURL)
}

// --------------------------------------------------------------------
// Search - delegated to internal/api
// --------------------------------------------------------------------

// Search queries the media library, sending params verbatim.
func (c *Client) Search(ctx context.Context, params SearchParams) (results []SearchResult, err error) {
	defer c.metrics.observe("search", time.Now(), &err)
	return api.Search(c.withLogger(ctx), c.rest, c.baseURL, params)
}

// SearchPublished runs the legacy search: published items only, query
// ANDed with the published filter, at most 50 results.
func (c *Client) SearchPublished(ctx context.Context, query string) ([]SearchResult, error) {
	return c.Search(ctx, LegacySearchParams(query))
}

// LegacySearchParams builds the parameters used by SearchPublished.
func LegacySearchParams(query string) SearchParams {
	return types.LegacySearchParams(query)
}

func normalizeBaseURL(u string) string {
	return strings.TrimRight(u, "/")
}
