package api

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	bberrors "github.com/domdoescode/blue-billywig/client/internal/errors"
	"github.com/domdoescode/blue-billywig/client/internal/types"
)

// GetRandom fetches the one-time token used to salt the password hash.
func GetRandom(ctx context.Context, hc *resty.Client, baseURL string) (string, error) {
	const op = "getRandom"
	zerolog.Ctx(ctx).Debug().Msg("getting random token for authentication")

	body, err := get(ctx, hc, op, baseURL+pathGetRandom, nil)
	if err != nil {
		return "", err
	}
	root, err := decodeXML(ctx, op, body)
	if err != nil {
		return "", err
	}
	if root.Name() != "response" || root.Content() == "" {
		return "", failed(ctx, bberrors.Structural(op, bberrors.ErrUnexpectedXML))
	}
	token := root.Content()
	zerolog.Ctx(ctx).Debug().Str("token", token).Msg("token received")
	return token, nil
}

// HashPassword derives the value sent in place of the plaintext password:
// base64(hex(md5(base64(hex(md5(password))) + token))).
func HashPassword(password, token string) string {
	first := md5.Sum([]byte(password))
	firstPass := base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(first[:]))) + token
	second := md5.Sum([]byte(firstPass))
	return base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(second[:])))
}

// Authenticate submits username and the token-salted password hash. On
// success the server's session cookie is kept by hc's cookie jar.
func Authenticate(ctx context.Context, hc *resty.Client, baseURL, username, password, token string) (*types.User, error) {
	const op = "authenticate"
	body, err := get(ctx, hc, op, baseURL+pathAuth, map[string]string{
		"action":   "get_user",
		"username": username,
		"password": HashPassword(password, token),
	})
	if err != nil {
		return nil, err
	}
	root, err := decodeXML(ctx, op, body)
	if err != nil {
		return nil, err
	}
	if code, ok := responseCode(root); ok && code == codeNotFound {
		zerolog.Ctx(ctx).Info().Str("username", username).Msg("user not authenticated")
		return nil, failed(ctx, bberrors.NotAuthenticated(op))
	}

	user := root
	if root.Name() != "user" {
		user = root.Child("user")
	}
	if user == nil {
		return nil, failed(ctx, bberrors.Structural(op, bberrors.ErrUnexpectedXML))
	}
	zerolog.Ctx(ctx).Debug().Str("username", username).Msg("user authenticated")
	return user, nil
}
