package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"
)

// debugTransport logs a full dump of every request and response.
//
// Enable it with WithDebugLogging(true) or by setting BBVMS_DEBUG=true or
// DEBUG=true in the environment. Dumps contain the login hash and session
// cookies; keep it out of production.
type debugTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}
	reqID := req.Header.Get(requestIDHeader)

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.log.Debug().Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		dt.log.Error().Err(err).Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.log.Debug().Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested turns on request dumps for clients built by a program
// that never calls WithDebugLogging, such as a script run with BBVMS_DEBUG=true.
// DEBUG=true is honoured as well. Only the exact value "true" counts.
func debugLoggingRequested() bool {
	return os.Getenv("BBVMS_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
