package sm2

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"math/big"

	"github.com/go-sm2/sm2/internal/sm2ec"
)

// curve is the single process-wide SM2-P-256 instance. elliptic.Curve
// implementations are stateless aside from the wNAF window, so one value
// is shared by every key and operation in this package.
var curve = sm2ec.New()

const (
	// privateKeyHexLen is the length of a private key in hex (32 bytes).
	privateKeyHexLen = 64
	// publicKeyHexLen is the length of an uncompressed public key in hex,
	// without the 0x04 prefix (64 bytes of X||Y).
	publicKeyHexLen = 128
)

// PublicKey is an SM2 public key point. The zero value is not a valid key.
type PublicKey struct {
	X, Y *big.Int
}

// PrivateKey is an SM2 private key scalar together with its derived point.
type PrivateKey struct {
	D *big.Int
	PublicKey
}

// point implements the pointSource interface consumed by Encrypt, Sign,
// Verify and ComputeZ, letting both PublicKey and PrecomputedPublicKey serve
// wherever the spec calls for "a public key".
func (pub *PublicKey) point() (x, y *big.Int, w int) { return pub.X, pub.Y, 0 }

type pointSource interface {
	point() (x, y *big.Int, window int)
}

// GenerateKey draws a private scalar uniformly from [1, n-2] using random
// and derives the matching public point d·G.
func GenerateKey(random io.Reader) (*PrivateKey, error) {
	if random == nil {
		random = rand.Reader
	}
	nMinus1 := new(big.Int).Sub(curve.Params().N, big.NewInt(1))
	for {
		d, err := sm2ec.RandScalar(curve, random)
		if err != nil {
			return nil, RandomSourceError{Err: err}
		}
		if d.Cmp(nMinus1) < 0 {
			return privateKeyFromScalar(d), nil
		}
	}
}

func privateKeyFromScalar(d *big.Int) *PrivateKey {
	x, y := curve.ScalarBaseMult(d.Bytes())
	return &PrivateKey{D: d, PublicKey: PublicKey{X: x, Y: y}}
}

// NewPrivateKey decodes a 64-character hex private key (big-endian,
// zero-padded) and derives the public point. It rejects d outside
// [1, n-2], matching the data model's key-material invariant.
func NewPrivateKey(hexKey string) (*PrivateKey, error) {
	b, err := decodeHex(hexKey, privateKeyHexLen)
	if err != nil {
		return nil, InvalidPrivateKeyError{Err: err}
	}
	d := new(big.Int).SetBytes(b)
	n := curve.Params().N
	nMinus2 := new(big.Int).Sub(n, big.NewInt(2))
	if d.Sign() <= 0 || d.Cmp(nMinus2) > 0 {
		return nil, InvalidPrivateKeyError{Err: errors.New("scalar out of range [1, n-2]")}
	}
	return privateKeyFromScalar(d), nil
}

// Hex renders the private key as 64 lowercase hex characters.
func (priv *PrivateKey) Hex() string {
	return hex.EncodeToString(sm2ec.PadCoord(curve, priv.D))
}

// NewPublicKey decodes an SM2 public key from its uncompressed SEC1 hex
// form, X||Y (128 hex chars) or 04||X||Y (130 hex chars); both are
// accepted on ingress per the external-interface normalization rule.
// Decoding rejects points that do not satisfy the curve equation.
func NewPublicKey(hexKey string) (*PublicKey, error) {
	raw, err := hex.DecodeString(normalizeHex(hexKey))
	if err != nil {
		return nil, InvalidPublicKeyError{Err: err}
	}
	x, y, err := sm2ec.UnmarshalUncompressedPoint(curve, raw)
	if err != nil {
		return nil, InvalidPublicKeyError{Err: err}
	}
	return &PublicKey{X: x, Y: y}, nil
}

// Hex renders the public key as 128 lowercase hex characters (X||Y,
// without the 0x04 prefix).
func (pub *PublicKey) Hex() string {
	enc := sm2ec.MarshalUncompressedPoint(curve, pub.X, pub.Y)
	return hex.EncodeToString(enc[1:])
}

// decodeHex decodes a hex string expected to be exactly wantLen
// characters after case normalization.
func decodeHex(s string, wantLen int) ([]byte, error) {
	s = normalizeHex(s)
	if len(s) != wantLen {
		return nil, errors.New("unexpected hex length")
	}
	return hex.DecodeString(s)
}

// normalizeHex strips an optional leading "04" point prefix from a
// 130-character public key hex string and lowercases the rest; hex
// inputs are parsed case-insensitively per the library's case policy.
func normalizeHex(s string) string {
	if len(s) == publicKeyHexLen+2 && s[0:2] == "04" {
		s = s[2:]
	}
	return toLowerASCII(s)
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'F' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
