// Package logger provides configured zerolog loggers.
package logger

import (
	"errors"
	"io"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

var marshalOnce sync.Once

// configureErrorMarshalling makes zerolog render github.com/pkg/errors
// stacks. The first stack recorded in the chain is used; errors without one
// get the stack of the logging call. Call sites opt in with .Stack().
func configureErrorMarshalling() {
	marshalOnce.Do(func() {
		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			type stackTracer interface {
				error
				StackTrace() pkgerrors.StackTrace
			}
			var st stackTracer
			if errors.As(err, &st) {
				return zpkgerrors.MarshalStack(st)
			}
			return zpkgerrors.MarshalStack(pkgerrors.WithStack(err))
		}
	})
}

// New returns a JSON logger writing to w, tagged with the service name.
func New(serviceName string, w io.Writer) zerolog.Logger {
	configureErrorMarshalling()
	return zerolog.New(w).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger writing to w at info level.
// It is the default logger of every client.
func NewConsole(serviceName string, w io.Writer) zerolog.Logger {
	configureErrorMarshalling()
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}).With().
		Str("service", serviceName).
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)
}
