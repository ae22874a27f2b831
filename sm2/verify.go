package sm2

import (
	"github.com/go-sm2/sm2/internal/sm2ec"
)

// Verify checks a raw 128-character hex signature r||s against message
// under pub. hash and userID mirror the Sign arguments used to produce
// the signature. It returns a single boolean; no error distinguishes a
// malformed signature from a cryptographically invalid one.
func Verify(message []byte, sigHex string, pub pointSource, hash bool, userID []byte) bool {
	sig, err := decodeSignatureHex(sigHex)
	if err != nil {
		return false
	}
	return verifyCore(message, sig, pub, hash, userID)
}

// VerifyASN1 is Verify for a DER-encoded SEQUENCE { INTEGER r, INTEGER s }.
func VerifyASN1(message []byte, der []byte, pub pointSource, hash bool, userID []byte) bool {
	sig, err := decodeSignatureASN1(der)
	if err != nil {
		return false
	}
	return verifyCore(message, sig, pub, hash, userID)
}

// verifyCore implements the GB/T 32918.2 verification equation.
func verifyCore(message []byte, sig *signature, pub pointSource, hash bool, userID []byte) bool {
	n := curve.Params().N
	if sig.r.Sign() <= 0 || sig.r.Cmp(n) >= 0 || sig.s.Sign() <= 0 || sig.s.Cmp(n) >= 0 {
		return false
	}

	x, y, window := pub.point()
	if x == nil || y == nil {
		return false
	}
	if window > 0 {
		sm2ec.SetWindow(curve, window)
	}

	e := computeE(message, hash, pub, userID)

	t := sm2ec.AddN(curve, sig.r, sig.s)
	if t.Sign() == 0 {
		return false
	}

	sgx, sgy := curve.ScalarBaseMult(sig.s.Bytes())
	tpx, tpy := curve.ScalarMult(x, y, t.Bytes())
	if sgx == nil && sgy == nil {
		sgx, sgy = tpx, tpy
	} else if tpx != nil {
		sgx, sgy = curve.Add(sgx, sgy, tpx, tpy)
	}
	if sgx == nil {
		return false
	}

	r := sm2ec.AddN(curve, e, sgx)
	return r.Cmp(sig.r) == 0
}
