package sm2

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/go-sm2/sm2/internal/sm2ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTripWithHash(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig, err := Sign([]byte("message to sign"), priv, true, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, sig, 128)
	assert.True(t, Verify([]byte("message to sign"), sig, &priv.PublicKey, true, nil))
}

func TestSignVerifyRoundTripWithoutHash(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	digest := make([]byte, 32)
	for i := range digest {
		digest[i] = byte(i)
	}

	sig, err := Sign(digest, priv, false, nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, Verify(digest, sig, &priv.PublicKey, false, nil))
}

func TestSignVerifyASN1RoundTrip(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := SignASN1([]byte("message"), priv, true, nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, VerifyASN1([]byte("message"), der, &priv.PublicKey, true, nil))
}

func TestSignASN1IsStableUnderReencoding(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := SignASN1([]byte("message"), priv, true, nil, nil, nil)
	require.NoError(t, err)

	sig, err := decodeSignatureASN1(der)
	require.NoError(t, err)
	reencoded, err := encodeSignatureASN1(sig)
	require.NoError(t, err)
	assert.Equal(t, der, reencoded)
}

func TestVerifyFailsForDifferentKey(t *testing.T) {
	priv1, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	priv2, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig, err := Sign([]byte("message"), priv1, true, nil, nil, nil)
	require.NoError(t, err)
	assert.False(t, Verify([]byte("message"), sig, &priv2.PublicKey, true, nil))
}

func TestVerifyFailsForTamperedMessage(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	sig, err := Sign([]byte("message"), priv, true, nil, nil, nil)
	require.NoError(t, err)
	assert.False(t, Verify([]byte("tampered message"), sig, &priv.PublicKey, true, nil))
}

func TestVerifyFailsForMalleableS(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	sig, err := Sign([]byte("message"), priv, true, nil, nil, nil)
	require.NoError(t, err)

	parsed, err := decodeSignatureHex(sig)
	require.NoError(t, err)

	n := curve.Params().N
	nMinusS := new(big.Int).Sub(n, parsed.s)
	mutated := hex.EncodeToString(sm2ec.PadCoord(curve, parsed.r)) + hex.EncodeToString(sm2ec.PadCoord(curve, nMinusS))
	assert.False(t, Verify([]byte("message"), mutated, &priv.PublicKey, true, nil))
}

func TestSignUsesPointPoolBeforeGeneratingFresh(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	pool := NewPool()
	kp, err := NewKeyPoint(rand.Reader)
	require.NoError(t, err)
	pool.Push(kp)

	sig, err := Sign([]byte("message"), priv, true, nil, nil, pool)
	require.NoError(t, err)
	assert.True(t, Verify([]byte("message"), sig, &priv.PublicKey, true, nil))
	assert.Equal(t, 0, pool.Len())
}

func TestSignRejectsMismatchedPublicKeyZ(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	other, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig, err := Sign([]byte("message"), priv, true, &other.PublicKey, nil, nil)
	require.NoError(t, err)
	assert.False(t, Verify([]byte("message"), sig, &priv.PublicKey, true, nil))
}
