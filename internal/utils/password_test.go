package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
    hash, err := HashPassword("s3cret", 4)
    require.NoError(t, err)
    assert.NotEqual(t, "s3cret", hash)
    assert.True(t, VerifyPassword(hash, "s3cret"))
    assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestRefreshTokenHashing(t *testing.T) {
    tok, err := NewRefreshToken(30)
    require.NoError(t, err)
    assert.Len(t, tok.Raw, 96)

    h1 := HashRefreshRaw(tok.Raw)
    h2 := HashRefreshRaw(tok.Raw)
    assert.Equal(t, h1, h2)
    assert.NotEqual(t, tok.Raw, h1)

    other, err := NewRefreshToken(30)
    require.NoError(t, err)
    assert.NotEqual(t, HashRefreshRaw(other.Raw), h1)
}
