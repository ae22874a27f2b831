package sm2

import (
	"errors"
	"fmt"
)

// errPublicKeyInfinity reports a public key point at infinity, which is
// never valid: the data model requires a non-identity point.
var errPublicKeyInfinity = errors.New("public key is the point at infinity")

// InvalidPrivateKeyError reports a private key scalar outside [1, n-2] or
// a malformed private key hex string.
type InvalidPrivateKeyError struct {
	Err error
}

func (e InvalidPrivateKeyError) Error() string {
	return fmt.Sprintf("sm2: invalid private key: %v", e.Err)
}

func (e InvalidPrivateKeyError) Unwrap() error { return e.Err }

// InvalidPublicKeyError reports a public key that fails hex decoding or
// does not lie on the curve.
type InvalidPublicKeyError struct {
	Err error
}

func (e InvalidPublicKeyError) Error() string {
	return fmt.Sprintf("sm2: invalid public key: %v", e.Err)
}

func (e InvalidPublicKeyError) Unwrap() error { return e.Err }

// CiphertextFormatError reports ciphertext that fails hex/ASN.1 framing.
type CiphertextFormatError struct {
	Err error
}

func (e CiphertextFormatError) Error() string {
	return fmt.Sprintf("sm2: malformed ciphertext: %v", e.Err)
}

func (e CiphertextFormatError) Unwrap() error { return e.Err }

// SignatureFormatError reports a signature that fails hex/ASN.1 framing.
// Components outside [1, n-1] are not reported with this type; Verify and
// VerifyASN1 reject them by returning false.
type SignatureFormatError struct {
	Err error
}

func (e SignatureFormatError) Error() string {
	return fmt.Sprintf("sm2: malformed signature: %v", e.Err)
}

func (e SignatureFormatError) Unwrap() error { return e.Err }

// RandomSourceError reports a failure of the configured random source.
// It is the only error the signing loop raises, and the only one the
// encryption loop raises once the message length and public key have been
// accepted; every other cryptographic rejection is either an internal
// retry (signing) or a soft-fail return value (decrypt/verify).
type RandomSourceError struct {
	Err error
}

func (e RandomSourceError) Error() string {
	return fmt.Sprintf("sm2: random source failed: %v", e.Err)
}

func (e RandomSourceError) Unwrap() error { return e.Err }

// MessageTooLargeError reports a plaintext whose length would overrun the
// 32-bit KDF counter (see kdf.go).
type MessageTooLargeError struct{}

func (e MessageTooLargeError) Error() string {
	return "sm2: message exceeds the maximum KDF-addressable length"
}
