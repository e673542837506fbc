package api

import (
	"context"

	"github.com/go-resty/resty/v2"

	bberrors "github.com/domdoescode/blue-billywig/client/internal/errors"
)

// CheckSession reports whether the cookie jar carries a live session.
// Code 200 is true, 404 is false; anything else is a structural error.
func CheckSession(ctx context.Context, hc *resty.Client, baseURL string) (bool, error) {
	const op = "checkSession"
	body, err := get(ctx, hc, op, baseURL+pathAuth, map[string]string{"action": "checkSession"})
	if err != nil {
		return false, err
	}
	root, err := decodeXML(ctx, op, body)
	if err != nil {
		return false, err
	}
	code, _ := responseCode(root)
	switch code {
	case codeOK:
		return true, nil
	case codeNotFound:
		return false, nil
	default:
		return false, failed(ctx, bberrors.Structural(op, bberrors.ErrUnexpectedXML))
	}
}

// LogOff destroys the server-side session. Only code 200 is success; a
// session that is already gone is reported as an error, unlike CheckSession.
func LogOff(ctx context.Context, hc *resty.Client, baseURL string) error {
	const op = "logOff"
	body, err := get(ctx, hc, op, baseURL+pathAuth, map[string]string{"action": "logoff"})
	if err != nil {
		return err
	}
	root, err := decodeXML(ctx, op, body)
	if err != nil {
		return err
	}
	if code, ok := responseCode(root); !ok || code != codeOK {
		return failed(ctx, bberrors.Structural(op, bberrors.ErrUnexpectedXML))
	}
	return nil
}
