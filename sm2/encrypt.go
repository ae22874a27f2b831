package sm2

import (
	"crypto/rand"
	"io"

	"github.com/go-sm2/sm2/internal/sm2ec"
	"github.com/go-sm2/sm2/sm3"
)

// Encrypt encrypts message for the recipient pub, returning lowercase hex
// framing in the given component order. pub may be a *PublicKey or a
// *PrecomputedPublicKey.
func Encrypt(message []byte, pub pointSource, order CipherOrder) (string, error) {
	ct, err := encryptCore(message, pub, rand.Reader)
	if err != nil {
		return "", err
	}
	return ct.encodeHex(order), nil
}

// EncryptString is Encrypt for a UTF-8 plaintext argument.
func EncryptString(message string, pub pointSource, order CipherOrder) (string, error) {
	return Encrypt([]byte(message), pub, order)
}

// EncryptASN1 encrypts message, returning the ciphertext as DER bytes:
// SEQUENCE { INTEGER x1, INTEGER y1, OCTET STRING, OCTET STRING }, the
// two OCTET STRINGs ordered per order.
func EncryptASN1(message []byte, pub pointSource, order CipherOrder) ([]byte, error) {
	ct, err := encryptCore(message, pub, rand.Reader)
	if err != nil {
		return nil, err
	}
	return ct.encodeASN1(order)
}

// encryptCore implements the GB/T 32918.4 encryption procedure: draw an
// ephemeral keypair, derive the shared point, mask the message with the
// KDF stream, and compute the SM3 integrity tag.
func encryptCore(message []byte, pub pointSource, random io.Reader) (*ciphertext, error) {
	if int64(len(message)) > kdfMaxLen {
		return nil, MessageTooLargeError{}
	}
	x, y, window := pub.point()
	if x == nil || y == nil {
		return nil, InvalidPublicKeyError{Err: errPublicKeyInfinity}
	}
	if window > 0 {
		sm2ec.SetWindow(curve, window)
	}

	for {
		k, err := sm2ec.RandScalar(curve, random)
		if err != nil {
			return nil, RandomSourceError{Err: err}
		}
		x1, y1 := curve.ScalarBaseMult(k.Bytes())
		if x1 == nil {
			continue
		}
		x2, y2 := curve.ScalarMult(x, y, k.Bytes())
		if x2 == nil {
			continue
		}

		x2Buf := sm2ec.PadCoord(curve, x2)
		y2Buf := sm2ec.PadCoord(curve, y2)

		c2 := append([]byte(nil), message...)
		xorInto(c2, kdf(x2Buf, y2Buf, len(message)))

		h := sm3.New()
		h.Write(x2Buf)
		h.Write(message)
		h.Write(y2Buf)
		c3 := h.Sum(nil)

		return &ciphertext{x1: x1, y1: y1, c2: c2, c3: c3}, nil
	}
}
