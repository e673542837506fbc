package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options are applied in order; the timeout, cookie jar and debug transport
// are installed after all options ran, so they also cover a client supplied
// through WithHTTPClient.
type Option func(*Client) error

// WithBaseURL points the client at another VMS host. A trailing slash is
// dropped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return fmt.Errorf("base url cannot be empty")
		}
		c.baseURL = normalizeBaseURL(baseURL)
		return nil
	}
}

// WithLogger replaces the default console logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithHTTPClient substitutes the transport. Tests use it to inject stub
// round trippers. A cookie jar is attached if hc has none, which mutates hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithHTTPTimeout bounds every VMS exchange, including the body read, to d.
// It is set on the http.Client once all options ran, so it also applies to a
// client passed through WithHTTPClient in any position. Without it only the
// caller's context limits a call.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithDebugLogging dumps every request and response at debug level when
// enabled is true, and lowers the client logger to debug.
//
// Dumps include query strings, so the login hash and session cookies end up
// in the log. Do not enable this in production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

// WithMetricsRegisterer registers the client's request metrics with reg.
// Clients sharing a registerer share the collectors.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) error {
		c.registry = reg
		return nil
	}
}
