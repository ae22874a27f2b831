package sm2

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecomputedPublicKeyServesAsPointSource(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	pre := Precompute(&priv.PublicKey, 4)
	x, y, window := pre.point()
	assert.Equal(t, priv.X, x)
	assert.Equal(t, priv.Y, y)
	assert.Equal(t, 4, window)
}

func TestPrecomputedPublicKeyWorksWithEncryptAndVerify(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	pre := Precompute(&priv.PublicKey, 5)

	ct, err := Encrypt([]byte("hello"), pre, C1C3C2)
	require.NoError(t, err)
	pt, err := Decrypt(ct, priv, C1C3C2)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), pt)

	sig, err := Sign([]byte("hello"), priv, true, nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, Verify([]byte("hello"), sig, pre, true, nil))
}
