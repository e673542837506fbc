// Package errors provides the error kinds surfaced by the client SDK.
// Every failure returned by an API call is an *Error carrying one Kind, so
// callers can tell a network failure from a malformed body or a negative
// protocol answer without matching on strings.
package errors

import (
	stderrors "errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a failure by where in the exchange it happened.
type Kind int

const (
	// KindTransport covers network, DNS and invalid URL failures.
	// The transport's error is kept as the underlying error.
	KindTransport Kind = iota

	// KindParse means the body was not well-formed XML or JSON.
	KindParse

	// KindStructural means the body parsed but lacked the elements or
	// response codes the protocol requires.
	KindStructural

	// KindNotAuthenticated is the server rejecting a login (code 404).
	KindNotAuthenticated
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "Transport"
	case KindParse:
		return "Parse"
	case KindStructural:
		return "Structural"
	case KindNotAuthenticated:
		return "NotAuthenticated"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Protocol sentinels. Their messages are part of the public contract.
var (
	ErrUnexpectedXML    = stderrors.New("XML structure not as expected")
	ErrInvalidJSON      = stderrors.New("Response was not valid JSON")
	ErrNotAuthenticated = stderrors.New("No user context or user is not authenticated")
)

// Error wraps an underlying error with its Kind and the operation that
// produced it.
type Error struct {
	Kind Kind
	Op   string // operation name, e.g. "checkSession"
	Err  error
}

// Error returns the underlying message unchanged so transport and parser
// messages reach the caller verbatim.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failed", e.Op, e.Kind)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	return e.Err
}

// Transport wraps a transport failure.
func Transport(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// Parse wraps a decoder failure.
func Parse(op string, err error) *Error {
	return &Error{Kind: KindParse, Op: op, Err: err}
}

// Structural reports a well-formed body missing what the protocol requires.
// A stack is attached at the point of detection.
func Structural(op string, err error) *Error {
	return &Error{Kind: KindStructural, Op: op, Err: pkgerrors.WithStack(err)}
}

// NotAuthenticated reports a rejected login.
func NotAuthenticated(op string) *Error {
	return &Error{Kind: KindNotAuthenticated, Op: op, Err: pkgerrors.WithStack(ErrNotAuthenticated)}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}
