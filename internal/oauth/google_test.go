package oauth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	g := NewGoogle("id", "secret", "http://localhost/cb", "state-secret", nil)

	state := g.MakeState("nonce-abc")
	require.True(t, g.VerifyState(state))
	require.True(t, strings.HasPrefix(state, "nonce-abc."))
}

func TestStateTamperDetected(t *testing.T) {
	g := NewGoogle("id", "secret", "http://localhost/cb", "state-secret", nil)

	state := g.MakeState("nonce-abc")
	raw, sig, _ := strings.Cut(state, ".")

	require.False(t, g.VerifyState("other-nonce."+sig))
	require.False(t, g.VerifyState(raw+".AAAA"))
	require.False(t, g.VerifyState(raw)) // no signature at all

	// A different key never validates the same state.
	g2 := NewGoogle("id", "secret", "http://localhost/cb", "another-secret", nil)
	require.False(t, g2.VerifyState(state))
}

func TestAuthURLCarriesState(t *testing.T) {
	g := NewGoogle("id", "secret", "http://localhost/cb", "state-secret", nil)
	url := g.AuthURL("the-state")
	require.Contains(t, url, "state=the-state")
	require.Contains(t, url, "client_id=id")
}
