// Package ring implements arithmetic in the truncated polynomial ring Z[x]/(x^N - 1)
// used by NTRUEncrypt: dense, ternary and product-form polynomials, sparse multiplication,
// inversion modulo 2, 3 and powers of two, ternary sampling and coefficient packing.
package ring

import (
	"errors"
	"fmt"

	"github.com/tuneinsight/ntru/utils"
)

// P is the small modulus.
const P = 3

// MaxN is the largest supported ring degree. Index counts and indices are serialized on 16 bits.
const MaxN = 1<<16 - 1

var (
	// ErrInvalidInput is returned when an operand violates the contract of an
	// operation: wrong degree, index out of range, unsorted or overlapping index sets.
	ErrInvalidInput = errors.New("invalid ring operand")

	// ErrNotInvertible is returned when a polynomial has no inverse for the requested modulus.
	ErrNotInvertible = errors.New("polynomial is not invertible")

	// ErrShortBuffer is returned when decoding from a buffer that is too short.
	ErrShortBuffer = errors.New("buffer too short for polynomial")
)

// Ring is the ring Z_q[x]/(x^N - 1) with q a power of two.
// A Ring is read-only after creation and can be shared between goroutines.
type Ring struct {
	n    int
	q    int64
	mask int64
	logQ int
	mul  Multiplier
}

// NewRing creates a new Ring of degree N and modulus Q, using the multiplication
// strategy selected for the host CPU (see [DetectMultiplier]).
func NewRing(N int, Q uint64) (*Ring, error) {
	return NewRingWithMultiplier(N, Q, DetectMultiplier())
}

// NewRingWithMultiplier creates a new Ring of degree N and modulus Q using the
// given dense multiplication strategy.
func NewRingWithMultiplier(N int, Q uint64, mul Multiplier) (*Ring, error) {

	if N < 2 || N > MaxN {
		return nil, fmt.Errorf("cannot NewRing: N=%d must be in [2, %d]", N, MaxN)
	}

	if !utils.IsPowerOfTwo(Q) || Q < 4 || Q > 1<<16 {
		return nil, fmt.Errorf("cannot NewRing: Q=%d must be a power of two in [4, 2^16]", Q)
	}

	if mul == nil {
		return nil, fmt.Errorf("cannot NewRing: nil multiplier")
	}

	return &Ring{
		n:    N,
		q:    int64(Q),
		mask: int64(Q - 1),
		logQ: utils.BitLen(Q),
		mul:  mul,
	}, nil
}

// N returns the degree of the ring.
func (r *Ring) N() int {
	return r.n
}

// Modulus returns q.
func (r *Ring) Modulus() uint64 {
	return uint64(r.q)
}

// Mask returns q-1.
func (r *Ring) Mask() int64 {
	return r.mask
}

// LogQ returns log2(q), which is the number of bits of a packed coefficient.
func (r *Ring) LogQ() int {
	return r.logQ
}

// Multiplier returns the dense multiplication strategy of the ring.
func (r *Ring) Multiplier() Multiplier {
	return r.mul
}

// NewPoly allocates a new zero polynomial of degree N.
func (r *Ring) NewPoly() Poly {
	return NewPoly(r.n)
}

func (r *Ring) checkPoly(p ...Poly) error {
	for i := range p {
		if p[i].N() != r.n {
			return fmt.Errorf("%w: polynomial has %d coefficients, ring has N=%d", ErrInvalidInput, p[i].N(), r.n)
		}
	}
	return nil
}
