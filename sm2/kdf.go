package sm2

import (
	"encoding/binary"
	"math"

	"github.com/go-sm2/sm2/sm3"
)

// kdfMaxLen bounds safe KDF output at (2^32 - 1) * 32 bytes, the point at
// which the 32-bit big-endian counter would wrap.
const kdfMaxLen = (int64(math.MaxUint32)) * sm3.Size

// kdf implements the GB/T 32918.4 counter-mode key derivation function:
// it hashes x2||y2||ct for ct = 1, 2, ... and concatenates the SM3 output
// blocks until length bytes have been produced. The same function is used
// to mask C2 on encryption and to unmask it on decryption: it is keyed
// purely by (x2, y2), so it inverts itself.
func kdf(x2, y2 []byte, length int) []byte {
	out := make([]byte, length)
	if length == 0 {
		return out
	}

	var ctBytes [4]byte
	ct := uint32(1)
	h := sm3.New()
	for start := 0; start < length; start += sm3.Size {
		binary.BigEndian.PutUint32(ctBytes[:], ct)
		h.Reset()
		h.Write(x2)
		h.Write(y2)
		h.Write(ctBytes[:])
		block := h.Sum(nil)

		end := start + sm3.Size
		if end > length {
			end = length
		}
		copy(out[start:end], block[:end-start])
		ct++
	}
	return out
}

// xorInto XORs mask into dst, which must be at least as long as mask.
func xorInto(dst, mask []byte) {
	for i := range mask {
		dst[i] ^= mask[i]
	}
}
