package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := HashPassword("s3cret-pw")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2"))
	require.NotEqual(t, "s3cret-pw", hash)

	require.True(t, CheckPassword(hash, "s3cret-pw"))
	require.False(t, CheckPassword(hash, "wrong"))
	require.False(t, CheckPassword("", "s3cret-pw"))
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
