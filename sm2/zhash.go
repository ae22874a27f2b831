package sm2

import (
	"math/big"

	"github.com/go-sm2/sm2/internal/sm2ec"
	"github.com/go-sm2/sm2/sm3"
)

// DefaultUID is the user identifier used when no explicit UID is supplied,
// a convention carried over from the standard's own worked examples.
// Applications that interoperate with other SM2 stacks must negotiate
// this value explicitly; a mismatched UID yields a deterministic but
// non-matching Z.
var DefaultUID = []byte("1234567812345678")

// curveA returns the SM2 Weierstrass coefficient a = p - 3, the only
// curve parameter not stored directly on elliptic.CurveParams.
func curveA() []byte {
	params := curve.Params()
	a := new(big.Int).Sub(params.P, big.NewInt(3))
	return sm2ec.PadCoord(curve, a)
}

// ComputeZ computes the GB/T 32918.2 identity hash:
//
//	Z = SM3(ENTL || userID || a || b || gx || gy || px || py)
//
// where ENTL is the bit length of userID as a 16-bit big-endian integer
// and every curve/key coordinate is a 32-byte big-endian buffer. An empty
// userID falls back to DefaultUID.
func ComputeZ(pub pointSource, userID []byte) []byte {
	if len(userID) == 0 {
		userID = DefaultUID
	}
	x, y, _ := pub.point()
	params := curve.Params()

	entl := uint16(len(userID)) * 8
	buf := make([]byte, 0, 2+len(userID)+6*32)
	buf = append(buf, byte(entl>>8), byte(entl))
	buf = append(buf, userID...)
	buf = append(buf, curveA()...)
	buf = append(buf, sm2ec.PadCoord(curve, params.B)...)
	buf = append(buf, sm2ec.PadCoord(curve, params.Gx)...)
	buf = append(buf, sm2ec.PadCoord(curve, params.Gy)...)
	buf = append(buf, sm2ec.PadCoord(curve, x)...)
	buf = append(buf, sm2ec.PadCoord(curve, y)...)

	h := sm3.New()
	h.Write(buf)
	return h.Sum(nil)
}

// preHash computes e = SM3(Z || M), the digest delivered to the sign and
// verify scalar equations when hash-prefixing is requested.
func preHash(pub pointSource, userID, message []byte) []byte {
	z := ComputeZ(pub, userID)
	h := sm3.New()
	h.Write(z)
	h.Write(message)
	return h.Sum(nil)
}
