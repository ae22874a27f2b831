package sm2

import (
	"io"
	"math/big"
	"sync"

	"github.com/go-sm2/sm2/internal/sm2ec"
)

// KeyPoint is a single ephemeral (k, x1) pair: a uniformly random scalar
// and the X coordinate of k·G. Precomputing these off the signing path
// amortizes the cost of the base-point multiplication.
type KeyPoint struct {
	K  *big.Int
	X1 *big.Int
}

// NewKeyPoint draws a fresh uniform k and computes x1 = (k·G).x. It does
// no signing work itself; it only prepares one pool entry.
func NewKeyPoint(random io.Reader) (KeyPoint, error) {
	k, err := sm2ec.RandScalar(curve, random)
	if err != nil {
		return KeyPoint{}, RandomSourceError{Err: err}
	}
	x1, _ := curve.ScalarBaseMult(k.Bytes())
	return KeyPoint{K: k, X1: x1}, nil
}

// Pool is a caller-owned producer/consumer queue of ephemeral (k, x1)
// pairs for the signer. Entries are single-use: Pop removes the entry it
// returns. The pool itself does not produce entries; callers push them,
// typically pre-computed off the critical path. A Pool is safe for
// concurrent use.
type Pool struct {
	mu    sync.Mutex
	items []KeyPoint
}

// NewPool returns an empty point pool.
func NewPool() *Pool { return &Pool{} }

// Push adds a pre-computed (k, x1) pair to the pool. Reusing a k value
// across multiple Push calls, or after it has already been popped once,
// breaks the signature scheme's security.
func (p *Pool) Push(kp KeyPoint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, kp)
}

// Pop removes and returns the most recently pushed entry, or ok=false if
// the pool is empty.
func (p *Pool) Pop() (kp KeyPoint, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.items)
	if n == 0 {
		return KeyPoint{}, false
	}
	kp = p.items[n-1]
	p.items[n-1] = KeyPoint{}
	p.items = p.items[:n-1]
	return kp, true
}

// Len reports the number of unused entries currently held.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}
