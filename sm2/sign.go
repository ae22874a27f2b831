package sm2

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"math/big"

	"github.com/go-sm2/sm2/internal/sm2ec"
	"golang.org/x/crypto/cryptobyte"
	cryptoAsn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// signature is the pair (r, s) produced by Sign, independent of its wire
// framing.
type signature struct {
	r, s *big.Int
}

// Sign produces a raw 128-character hex signature r||s, each component
// zero-padded to 32 bytes. If hash is true, the message is pre-hashed
// with the identity binding e = SM3(Z||M), Z computed against pub (or
// priv's own public key if pub is nil) and userID (DefaultUID if empty).
// If hash is false, message is treated as an already-computed digest and
// interpreted directly as the big-endian integer e. pool, if non-nil, is
// consulted first for ephemeral (k, x1) pairs before a fresh one is drawn.
func Sign(message []byte, priv *PrivateKey, hash bool, pub pointSource, userID []byte, pool *Pool) (string, error) {
	sig, err := signCore(message, priv, hash, pub, userID, pool, rand.Reader)
	if err != nil {
		return "", err
	}
	rBuf := sm2ec.PadCoord(curve, sig.r)
	sBuf := sm2ec.PadCoord(curve, sig.s)
	return hex.EncodeToString(rBuf) + hex.EncodeToString(sBuf), nil
}

// SignASN1 is Sign with the signature DER-encoded as
// SEQUENCE { INTEGER r, INTEGER s }.
func SignASN1(message []byte, priv *PrivateKey, hash bool, pub pointSource, userID []byte, pool *Pool) ([]byte, error) {
	sig, err := signCore(message, priv, hash, pub, userID, pool, rand.Reader)
	if err != nil {
		return nil, err
	}
	return encodeSignatureASN1(sig)
}

func encodeSignatureASN1(sig *signature) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cryptoAsn1.SEQUENCE, func(child *cryptobyte.Builder) {
		child.AddASN1BigInt(sig.r)
		child.AddASN1BigInt(sig.s)
	})
	return b.Bytes()
}

func decodeSignatureASN1(der []byte) (*signature, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cryptoAsn1.SEQUENCE) {
		return nil, SignatureFormatError{Err: errors.New("invalid signature SEQUENCE")}
	}
	r, s := new(big.Int), new(big.Int)
	if !seq.ReadASN1Integer(r) || !seq.ReadASN1Integer(s) {
		return nil, SignatureFormatError{Err: errors.New("invalid signature integers")}
	}
	return &signature{r: r, s: s}, nil
}

func decodeSignatureHex(s string) (*signature, error) {
	raw, err := hex.DecodeString(toLowerASCII(s))
	if err != nil || len(raw) != 64 {
		return nil, SignatureFormatError{Err: errors.New("signature must be 128 hex characters")}
	}
	r := new(big.Int).SetBytes(raw[:32])
	sVal := new(big.Int).SetBytes(raw[32:])
	return &signature{r: r, s: sVal}, nil
}

// computeE implements the §4.4/§4.5 shared digest computation: either the
// Z-prefixed SM3 pre-hash, or message interpreted directly as a digest.
func computeE(message []byte, hash bool, pub pointSource, userID []byte) *big.Int {
	if hash {
		return new(big.Int).SetBytes(preHash(pub, userID, message))
	}
	return new(big.Int).SetBytes(message)
}

func signCore(message []byte, priv *PrivateKey, hash bool, pub pointSource, userID []byte, pool *Pool, random io.Reader) (*signature, error) {
	if pub == nil {
		pub = &priv.PublicKey
	}
	e := computeE(message, hash, pub, userID)
	n := curve.Params().N

	for {
		var k, x1 *big.Int
		if pool != nil {
			if kp, ok := pool.Pop(); ok {
				k, x1 = kp.K, kp.X1
			}
		}
		if k == nil {
			kp, err := NewKeyPoint(random)
			if err != nil {
				return nil, err
			}
			k, x1 = kp.K, kp.X1
		}
		if x1 == nil {
			continue
		}

		r := sm2ec.AddN(curve, e, x1)
		if r.Sign() == 0 {
			continue
		}
		rPlusK := new(big.Int).Add(r, k)
		if rPlusK.Cmp(n) == 0 {
			continue
		}

		dPlus1 := sm2ec.AddN(curve, priv.D, sm2ec.OneN())
		dPlus1Inv := sm2ec.InvN(curve, dPlus1)
		rd := sm2ec.MulN(curve, r, priv.D)
		kMinusRd := sm2ec.SubN(curve, k, rd)
		s := sm2ec.MulN(curve, dPlus1Inv, kMinusRd)
		if s.Sign() == 0 {
			continue
		}

		return &signature{r: r, s: s}, nil
	}
}
