package client

import (
	bberrors "github.com/domdoescode/blue-billywig/client/internal/errors"
)

// Re-export the error kinds so callers compare against a single package.
type (
	Error     = bberrors.Error
	ErrorKind = bberrors.Kind
)

const (
	KindTransport        = bberrors.KindTransport
	KindParse            = bberrors.KindParse
	KindStructural       = bberrors.KindStructural
	KindNotAuthenticated = bberrors.KindNotAuthenticated
)

var (
	// ErrNotAuthenticated is matched by errors.Is when the VMS rejects a login.
	ErrNotAuthenticated = bberrors.ErrNotAuthenticated

	// ErrUnexpectedXML is matched when an XML response lacks required elements.
	ErrUnexpectedXML = bberrors.ErrUnexpectedXML

	// ErrInvalidJSON is matched when a search response is not a JSON object.
	ErrInvalidJSON = bberrors.ErrInvalidJSON
)

// IsTransport reports whether err is a network, DNS or URL failure.
func IsTransport(err error) bool { return bberrors.Is(err, KindTransport) }

// IsParse reports whether err is a malformed XML or JSON body.
func IsParse(err error) bool { return bberrors.Is(err, KindParse) }

// IsStructural reports whether err is a body missing required fields or codes.
func IsStructural(err error) bool { return bberrors.Is(err, KindStructural) }

// IsNotAuthenticated reports whether err is a rejected login.
func IsNotAuthenticated(err error) bool { return bberrors.Is(err, KindNotAuthenticated) }
