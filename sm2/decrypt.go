package sm2

import (
	"crypto/subtle"
	"errors"

	"github.com/go-sm2/sm2/internal/sm2ec"
	"github.com/go-sm2/sm2/sm3"
)

// Decrypt recovers the plaintext from hex-framed ciphertext using priv.
// A malformed framing or an off-curve/identity C1 is a decode failure
// (non-nil error). An integrity mismatch is the standard's soft-fail
// contract: it returns a nil error with an empty plaintext, indistinguishable
// from a genuine zero-length message without checking length out of band.
func Decrypt(hexCiphertext string, priv *PrivateKey, order CipherOrder) ([]byte, error) {
	ct, err := decodeHexCiphertext(hexCiphertext, order)
	if err != nil {
		return nil, CiphertextFormatError{Err: err}
	}
	return decryptCore(ct, priv)
}

// DecryptToString is Decrypt with the plaintext returned as a UTF-8
// string. A non-UTF-8 plaintext is returned as-is, byte for byte; this
// library does not validate or repair decrypted output, leaving that
// choice to the caller.
func DecryptToString(hexCiphertext string, priv *PrivateKey, order CipherOrder) (string, error) {
	m, err := Decrypt(hexCiphertext, priv, order)
	return string(m), err
}

// DecryptASN1 is Decrypt for DER-framed ciphertext.
func DecryptASN1(der []byte, priv *PrivateKey, order CipherOrder) ([]byte, error) {
	ct, err := decodeASN1Ciphertext(der, order)
	if err != nil {
		return nil, CiphertextFormatError{Err: err}
	}
	return decryptCore(ct, priv)
}

// decryptCore implements the GB/T 32918.4 decryption procedure: recompute
// the shared point from C1 and the private scalar, unmask C2 with the KDF
// stream, and check the integrity tag.
func decryptCore(ct *ciphertext, priv *PrivateKey) ([]byte, error) {
	if !curve.IsOnCurve(ct.x1, ct.y1) {
		return nil, CiphertextFormatError{Err: errors.New("C1 is not on the curve")}
	}

	x2, y2 := curve.ScalarMult(ct.x1, ct.y1, priv.D.Bytes())
	if x2 == nil {
		return nil, CiphertextFormatError{Err: errPublicKeyInfinity}
	}
	x2Buf := sm2ec.PadCoord(curve, x2)
	y2Buf := sm2ec.PadCoord(curve, y2)

	m := append([]byte(nil), ct.c2...)
	xorInto(m, kdf(x2Buf, y2Buf, len(m)))

	h := sm3.New()
	h.Write(x2Buf)
	h.Write(m)
	h.Write(y2Buf)
	want := h.Sum(nil)

	if subtle.ConstantTimeCompare(want, ct.c3) != 1 {
		return []byte{}, nil
	}
	return m, nil
}
