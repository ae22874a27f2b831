package sm2

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecryptTamperedC3ReturnsEmpty(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	ct, err := Encrypt([]byte("hello"), &priv.PublicKey, C1C3C2)
	require.NoError(t, err)

	tampered := flipHexNibble(ct, 128) // first nibble of C3 in C1C3C2 order
	pt, err := Decrypt(tampered, priv, C1C3C2)
	require.NoError(t, err)
	assert.Empty(t, pt)
}

func TestDecryptTamperedC2ReturnsEmpty(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	ct, err := Encrypt([]byte("hello"), &priv.PublicKey, C1C3C2)
	require.NoError(t, err)

	tampered := flipHexNibble(ct, len(ct)-1)
	pt, err := Decrypt(tampered, priv, C1C3C2)
	require.NoError(t, err)
	assert.Empty(t, pt)
}

func TestDecryptTamperedC1FailsToDecode(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	ct, err := Encrypt([]byte("hello"), &priv.PublicKey, C1C3C2)
	require.NoError(t, err)

	tampered := flipHexNibble(ct, 0)
	_, err = Decrypt(tampered, priv, C1C3C2)
	assert.Error(t, err)
}

func TestDecryptRejectsMalformedHex(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	_, err = Decrypt("not hex at all", priv, C1C3C2)
	assert.Error(t, err)
}

func TestDecryptWithWrongKeyFailsIntegrity(t *testing.T) {
	priv1, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	priv2, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	ct, err := Encrypt([]byte("hello"), &priv1.PublicKey, C1C3C2)
	require.NoError(t, err)

	pt, err := Decrypt(ct, priv2, C1C3C2)
	require.NoError(t, err)
	assert.Empty(t, pt)
}

func TestDecryptToStringRoundTrip(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	ct, err := Encrypt([]byte("hello"), &priv.PublicKey, C1C3C2)
	require.NoError(t, err)

	s, err := DecryptToString(ct, priv, C1C3C2)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

// flipHexNibble flips one hex character at index i, wrapping to a
// different valid hex digit deterministically.
func flipHexNibble(s string, i int) string {
	b := []byte(s)
	if b[i] == '0' {
		b[i] = '1'
	} else {
		b[i] = '0'
	}
	return string(b)
}
