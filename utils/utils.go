// Package utils contains helper structures and functions shared by the ring, random and ntru packages.
package utils

import (
	"math/bits"
)

// MinInt returns the minimum value of the input int values.
func MinInt(a, b int) (r int) {
	if a <= b {
		return a
	}
	return b
}

// GCD computes the greatest common divisor of a and b.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// IsPowerOfTwo returns true if x is a positive power of two.
func IsPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}

// BitLen returns the number of bits needed to represent every value in [0, x).
// BitLen(1) = 0, BitLen(2) = 1, BitLen(401) = 9.
func BitLen(x uint64) int {
	if x <= 1 {
		return 0
	}
	return bits.Len64(x - 1)
}

// CeilDiv returns ceil(a/b) for non-negative a and positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
