package api

import (
	"bytes"
	"context"
	"encoding/xml"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"

	bberrors "github.com/domdoescode/blue-billywig/client/internal/errors"
	"github.com/domdoescode/blue-billywig/client/internal/types"
)

// Endpoint paths under the configured base URL.
const (
	pathGetRandom = "/api/getRandom"
	pathAuth      = "/api/bbauth"
	pathSearch    = "/json/search"
)

// Response codes carried in the code attribute of <response>.
const (
	codeOK       = "200"
	codeNotFound = "404"
)

// get issues a GET with the given query parameters and returns the raw body.
// The HTTP status is not inspected; the VMS reports outcomes in the body.
func get(ctx context.Context, hc *resty.Client, op, url string, query map[string]string) ([]byte, error) {
	log := zerolog.Ctx(ctx)
	if err := ctx.Err(); err != nil {
		return nil, bberrors.Transport(op, err)
	}
	resp, err := hc.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(url)
	if err != nil {
		log.Error().Err(err).Str("op", op).Str("url", url).Msg("request failed")
		return nil, bberrors.Transport(op, err)
	}
	log.Debug().
		Str("op", op).
		Int("status_code", resp.StatusCode()).
		Int("body_len", len(resp.Body())).
		Msg("response received")
	return resp.Body(), nil
}

// decodeXML parses body into its root element. Decoder errors are returned
// unchanged inside a parse error.
func decodeXML(ctx context.Context, op string, body []byte) (*types.XMLNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel

	var root types.XMLNode
	if err := dec.Decode(&root); err != nil {
		return nil, failed(ctx, bberrors.Parse(op, err))
	}
	zerolog.Ctx(ctx).Debug().Str("op", op).Str("root", root.Name()).Msg("XML decoded")
	return &root, nil
}

// responseCode returns the code attribute of a <response> root element.
func responseCode(root *types.XMLNode) (string, bool) {
	if root == nil || root.Name() != "response" {
		return "", false
	}
	return root.Attr("code")
}

// failed logs a parse, structural or rejected-login error with its stack and
// returns it. Transport failures are logged by get.
func failed(ctx context.Context, err *bberrors.Error) error {
	zerolog.Ctx(ctx).Warn().Stack().Err(err).
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Msg("VMS call failed")
	return err
}
