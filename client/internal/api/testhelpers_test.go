package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Canned bodies modelled on the VMS responses.
const (
	xmlBroken            = `<response code='`
	xmlTokenOK           = `<?xml version="1.0" encoding="UTF-8"?><response code="200">eb6b0b1a8c</response>`
	xmlTokenMissing      = `<?xml version="1.0" encoding="UTF-8"?><error code="500"/>`
	xmlUser              = `<?xml version="1.0" encoding="UTF-8"?><user id="42" name="D.Udall" login="dom"><email>dom@example.com</email></user>`
	xmlNotAuthenticated  = `<?xml version="1.0" encoding="UTF-8"?><response code="404">No user context</response>`
	xmlSessionExists     = `<?xml version="1.0" encoding="UTF-8"?><response code="200"/>`
	xmlSessionMissing    = `<?xml version="1.0" encoding="UTF-8"?><response code="404"/>`
	xmlUnknownCode       = `<?xml version="1.0" encoding="UTF-8"?><response code="500"/>`
	xmlNoResponse        = `<?xml version="1.0" encoding="UTF-8"?><something code="200"/>`
	xmlLogOffDone        = `<?xml version="1.0" encoding="UTF-8"?><response code="200">Session destroyed</response>`
	xmlLogOffAlreadyGone = `<?xml version="1.0" encoding="UTF-8"?><response code="404">No session</response>`
	jsonSearchOne        = `{"count":1,"items":[{"id":"1066","title":"test","assets":"[{\"id\":\"9\",\"src\":\"/a.mp4\"}]","thumbnails":"{\"main\":\"/t.jpg\"}"}]}`
	jsonSearchNone       = `{"count":0}`
	jsonSearchBadAssets  = `{"items":[{"id":"1","assets":"[oops","thumbnails":"{}"}]}`
	jsonSearchNullItem   = `{"items":[null]}`
	jsonSearchStructured = `{"items":[{"id":"2","assets":[{"id":"3"}]}]}`
	jsonBroken           = `{"items": [`
	jsonNotObject        = `["a","b"]`
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// stubServer answers every request with a fixed body and records the
// query of the last request.
type stubServer struct {
	*httptest.Server

	mu    sync.Mutex
	path  string
	query url.Values
}

func serve(t *testing.T, body string) *stubServer {
	t.Helper()
	s := &stubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.path, s.query = r.URL.Path, r.URL.Query()
		s.mu.Unlock()
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stubServer) last() (string, url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path, s.query
}

func testCtx() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func newResty() *resty.Client {
	return resty.New()
}
