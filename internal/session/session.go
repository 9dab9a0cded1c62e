// Package session stores opaque login tokens. Tokens expire on their own
// and can be revoked one at a time, so a stolen cookie has a bounded
// lifetime and logout actually invalidates the credential.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
)

// Store resolves, creates and revokes opaque session tokens.
type Store interface {
	// Create mints a fresh token bound to userID.
	Create(ctx context.Context, userID string) (string, error)
	// Resolve returns the bound user id, or "" for unknown/expired tokens.
	Resolve(ctx context.Context, token string) (string, error)
	// Revoke invalidates a single token. Unknown tokens are a no-op.
	Revoke(ctx context.Context, token string) error
}

// NewToken returns a 256-bit random token, base64url without padding.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
