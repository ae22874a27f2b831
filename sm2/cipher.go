package sm2

import (
	"encoding/hex"
	"errors"
	"math/big"
	"strings"

	"github.com/go-sm2/sm2/internal/sm2ec"
	"github.com/go-sm2/sm2/sm3"
	"golang.org/x/crypto/cryptobyte"
	cryptoAsn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// CipherOrder selects how an SM2 ciphertext's C1/C2/C3 components are
// concatenated (hex framing) or ordered as ASN.1 OCTET STRINGs (DER
// framing). The numeric values match the external interface: mode 0 is
// C1C2C3, the non-default alternate ordering.
type CipherOrder int

const (
	// C1C2C3 concatenates the ephemeral point, cipher body, then digest.
	C1C2C3 CipherOrder = 0
	// C1C3C2 concatenates the ephemeral point, digest, then cipher body.
	// This is the default framing.
	C1C3C2 CipherOrder = 1
)

// DefaultOrder is the conventional default framing. Encrypt, Decrypt and
// their ASN.1 variants take the order as an explicit argument and do not
// consult this constant.
const DefaultOrder = C1C3C2

const coordHexLen = 64 // 32-byte coordinate, hex-encoded

// ciphertext is the logical SM2 ciphertext: the ephemeral point C1, the
// XOR-masked body C2, and the SM3 integrity tag C3.
type ciphertext struct {
	x1, y1 *big.Int
	c2     []byte
	c3     []byte // always sm3.Size bytes
}

// encodeHex renders the ciphertext as lowercase hex: C1 is always first,
// followed by C3/C2 or C2/C3 depending on order. C1 never carries the
// 0x04 uncompressed-point prefix in this framing.
func (c *ciphertext) encodeHex(order CipherOrder) string {
	var b strings.Builder
	b.Grow(2*coordHexLen + 2*len(c.c3) + 2*len(c.c2))
	b.WriteString(hex.EncodeToString(sm2ec.PadCoord(curve, c.x1)))
	b.WriteString(hex.EncodeToString(sm2ec.PadCoord(curve, c.y1)))
	if order == C1C2C3 {
		b.WriteString(hex.EncodeToString(c.c2))
		b.WriteString(hex.EncodeToString(c.c3))
	} else {
		b.WriteString(hex.EncodeToString(c.c3))
		b.WriteString(hex.EncodeToString(c.c2))
	}
	return b.String()
}

// decodeHexCiphertext parses the hex framing described by encodeHex.
func decodeHexCiphertext(s string, order CipherOrder) (*ciphertext, error) {
	s = toLowerASCII(strings.TrimSpace(s))
	minLen := 2*coordHexLen + 2*sm3.Size // C1 + C3, C2 may be empty
	if len(s) < minLen {
		return nil, errors.New("ciphertext too short")
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	coordLen := coordHexLen / 2
	x1 := new(big.Int).SetBytes(raw[:coordLen])
	y1 := new(big.Int).SetBytes(raw[coordLen : 2*coordLen])
	rest := raw[2*coordLen:]
	if len(rest) < sm3.Size {
		return nil, errors.New("ciphertext missing integrity tag")
	}

	ct := &ciphertext{x1: x1, y1: y1}
	if order == C1C2C3 {
		ct.c2 = rest[:len(rest)-sm3.Size]
		ct.c3 = rest[len(rest)-sm3.Size:]
	} else {
		ct.c3 = rest[:sm3.Size]
		ct.c2 = rest[sm3.Size:]
	}
	return ct, nil
}

// encodeASN1 renders the ciphertext as SEQUENCE { INTEGER x1, INTEGER y1,
// OCTET STRING, OCTET STRING }, the two OCTET STRINGs ordered per mode.
func (c *ciphertext) encodeASN1(order CipherOrder) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cryptoAsn1.SEQUENCE, func(child *cryptobyte.Builder) {
		child.AddASN1BigInt(c.x1)
		child.AddASN1BigInt(c.y1)
		if order == C1C2C3 {
			child.AddASN1OctetString(c.c2)
			child.AddASN1OctetString(c.c3)
		} else {
			child.AddASN1OctetString(c.c3)
			child.AddASN1OctetString(c.c2)
		}
	})
	return b.Bytes()
}

// decodeASN1Ciphertext parses the DER framing described by encodeASN1.
func decodeASN1Ciphertext(der []byte, order CipherOrder) (*ciphertext, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cryptoAsn1.SEQUENCE) {
		return nil, errors.New("invalid ciphertext SEQUENCE")
	}

	x1, y1 := new(big.Int), new(big.Int)
	var first, second cryptobyte.String
	if !seq.ReadASN1Integer(x1) || !seq.ReadASN1Integer(y1) ||
		!seq.ReadASN1(&first, cryptoAsn1.OCTET_STRING) ||
		!seq.ReadASN1(&second, cryptoAsn1.OCTET_STRING) {
		return nil, errors.New("invalid ciphertext fields")
	}

	ct := &ciphertext{x1: x1, y1: y1}
	if order == C1C2C3 {
		ct.c2, ct.c3 = first, second
	} else {
		ct.c3, ct.c2 = first, second
	}
	if len(ct.c3) != sm3.Size {
		return nil, errors.New("invalid integrity tag length")
	}
	return ct, nil
}
