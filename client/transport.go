package client

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// newRestClient builds the resty client every API call goes through. It
// shares hc, and with it the cookie jar holding the VMS session.
func newRestClient(hc *http.Client, log zerolog.Logger) *resty.Client {
	return resty.NewWithClient(hc).
		SetLogger(restyLogger{log: log}).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			r.SetHeader(requestIDHeader, uuid.NewString())
			return nil
		})
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}
