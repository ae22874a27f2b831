package sm2

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These pin the GB/T 32918.2-2016 Annex A sample private key, with the
// message and userID below, against literal expected outputs, not just
// internal self-consistency:
// an implementation with, say, the wrong coordinate byte order or a
// mistaken a = p-3 padding would fail these even though it could still
// pass a bare sign-then-verify round trip.
const (
	annexAPrivateKeyHex = "3945208f7b2144b13f36e38ac6d39f95889393692860b51a42fb81ef4df7c5b8"
	annexAMessage       = "encryption standard"
	annexAUserID        = "ALICE123@YAHOO.COM"

	// annexAZAliceHex is Z = SM3(ENTL||userID||a||b||gx||gy||px||py) for
	// the Annex A key and userID above.
	annexAZAliceHex = "26db4bc1839bd22e97e1dab667ec5e0a730d5e16521398b4435c576a93afd7ed"

	// annexAKHex/annexAX1Hex are a fixed ephemeral (k, x1 = (k*G).x) pair
	// pushed through the pool so Sign consumes a pinned k instead of a
	// fresh random one, making the resulting (r, s) reproducible.
	annexAKHex  = "6cb28d99385c175c94f94e934817663fc176d925dd72b727260dbaae1fb2f96"
	annexAX1Hex = "57ad30e4a13be6e87ffeaf442867711e9b2625f7ba1787e2f4e33920371ba667"

	// annexASignatureHex is the raw r||s signature Sign must reproduce
	// bit-exactly under the fixed k above.
	annexASignatureHex = "5d3d0009401bff7f181136ae782b090856eb2869c18a19eef97d67d879d513de" +
		"4927e2e7c3c53e72b0f95e6e9be5ebbb70bff01e8f71acc804cb96ae021def63"
)

func annexAPrivateKey(t *testing.T) *PrivateKey {
	t.Helper()
	priv, err := NewPrivateKey(annexAPrivateKeyHex)
	require.NoError(t, err)
	return priv
}

func TestAnnexAZMatchesPublishedValue(t *testing.T) {
	priv := annexAPrivateKey(t)

	z := ComputeZ(&priv.PublicKey, []byte(annexAUserID))
	assert.Equal(t, annexAZAliceHex, hex.EncodeToString(z))
}

func TestAnnexASignatureMatchesPinnedValueUnderFixedEphemeral(t *testing.T) {
	priv := annexAPrivateKey(t)

	k, ok := new(big.Int).SetString(annexAKHex, 16)
	require.True(t, ok)
	x1, ok := new(big.Int).SetString(annexAX1Hex, 16)
	require.True(t, ok)

	pool := NewPool()
	pool.Push(KeyPoint{K: k, X1: x1})

	sig, err := Sign([]byte(annexAMessage), priv, true, nil, []byte(annexAUserID), pool)
	require.NoError(t, err)
	assert.Equal(t, annexASignatureHex, sig)
	assert.True(t, Verify([]byte(annexAMessage), sig, &priv.PublicKey, true, []byte(annexAUserID)))
}

func TestAnnexARoundTripEncryptDecrypt(t *testing.T) {
	priv := annexAPrivateKey(t)

	ct, err := Encrypt([]byte(annexAMessage), &priv.PublicKey, C1C3C2)
	require.NoError(t, err)
	pt, err := Decrypt(ct, priv, C1C3C2)
	require.NoError(t, err)
	assert.Equal(t, annexAMessage, string(pt))
}
