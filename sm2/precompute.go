package sm2

import "math/big"

// PrecomputedPublicKey pairs a public key point with a wNAF window-size
// hint, for reuse across repeated encryption or verification calls against
// the same recipient. It is accepted wherever the unexported pointSource
// interface is (Encrypt, EncryptASN1, Verify, VerifyASN1, Sign's pub
// argument, ComputeZ). It holds no precomputed multiples of the point.
type PrecomputedPublicKey struct {
	pub    *PublicKey
	window int
}

// Precompute returns a handle that records pub and a wNAF window size.
// Encrypt and Verify apply a positive window to the package-level curve
// before multiplying, so it stays in effect for later operations too;
// values outside 2..6 are ignored and the current window is kept.
// No table is built for pub, here or later: the curve caches precomputed
// tables only for the base point, one per window size, and rebuilds the
// table for any other point on every scalar multiplication.
func Precompute(pub *PublicKey, window int) *PrecomputedPublicKey {
	return &PrecomputedPublicKey{pub: pub, window: window}
}

func (p *PrecomputedPublicKey) point() (x, y *big.Int, window int) {
	return p.pub.X, p.pub.Y, p.window
}
