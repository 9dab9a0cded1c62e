package oauth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/oauth2"
	ggoogle "golang.org/x/oauth2/google"
)

// GoogleOAuth drives the redirect (authorization-code) login flow. The
// one-tap /tokensignin path goes straight through Verifier instead.
type GoogleOAuth struct {
	cfg      *oauth2.Config
	verifier *Verifier
	stateKey []byte
}

func NewGoogle(clientID, clientSecret, redirectURI, stateSecret string, v *Verifier) *GoogleOAuth {
	return &GoogleOAuth{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     ggoogle.Endpoint,
		},
		verifier: v,
		stateKey: []byte(stateSecret),
	}
}

// MakeState signs raw with HMAC-SHA256 for CSRF protection.
func (g *GoogleOAuth) MakeState(raw string) string {
	mac := hmac.New(sha256.New, g.stateKey)
	mac.Write([]byte(raw))
	return raw + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (g *GoogleOAuth) VerifyState(got string) bool {
	raw, sig, ok := strings.Cut(got, ".")
	if !ok {
		return false
	}
	sigb, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, g.stateKey)
	mac.Write([]byte(raw))
	return hmac.Equal(mac.Sum(nil), sigb)
}

func (g *GoogleOAuth) AuthURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for tokens and fully verifies
// the returned ID token before trusting its claims.
func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (string, *Identity, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return "", nil, err
	}
	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", nil, errors.New("no id_token in exchange response")
	}
	id, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", nil, err
	}
	return rawIDToken, id, nil
}
