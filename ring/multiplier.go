package ring

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Multiplier is a dense multiplication strategy in Z[x]/(x^N - 1).
// All strategies compute the same function: they differ only in speed.
type Multiplier interface {
	// Name returns the name of the strategy.
	Name() string
	// MulCoeffs evaluates the cyclic convolution out = a * b. Arithmetic wraps
	// modulo 2^64, so the result is exact modulo any power of two and exact over
	// the integers when no coefficient overflows. out may alias a or b.
	MulCoeffs(a, b, out []int64)
}

// Schoolbook is the quadratic multiplication strategy.
var Schoolbook Multiplier = schoolbook{}

// Karatsuba is the recursive Karatsuba multiplication strategy.
var Karatsuba Multiplier = karatsuba{threshold: 32}

var (
	detectOnce sync.Once
	detected   Multiplier
)

// DetectMultiplier returns the multiplication strategy best suited to the host CPU.
// The choice is made once per process.
func DetectMultiplier() Multiplier {
	detectOnce.Do(func() {
		detected = selectMultiplier(cpuid.CPU)
	})
	return detected
}

// selectMultiplier picks Karatsuba on CPUs with wide vector units, where the
// compiler-vectorized additions of the recursion pay off, and Schoolbook otherwise.
func selectMultiplier(cpu cpuid.CPUInfo) Multiplier {
	if cpu.Supports(cpuid.AVX2) || cpu.Supports(cpuid.ASIMD) {
		return Karatsuba
	}
	return Schoolbook
}

type schoolbook struct{}

func (schoolbook) Name() string {
	return "schoolbook"
}

func (schoolbook) MulCoeffs(a, b, out []int64) {

	N := len(a)
	c := make([]int64, N)

	for i, ai := range a {
		if ai == 0 {
			continue
		}
		hi, lo := c[i:], c[:i]
		for j := range hi {
			hi[j] += ai * b[j]
		}
		for j := range lo {
			lo[j] += ai * b[N-i+j]
		}
	}

	copy(out, c)
}

type karatsuba struct {
	threshold int
}

func (karatsuba) Name() string {
	return "karatsuba"
}

func (k karatsuba) MulCoeffs(a, b, out []int64) {

	N := len(a)
	prod := make([]int64, 2*N-1)
	k.linear(a, b, prod)

	// Fold x^(N+i) onto x^i.
	copy(out, prod[:N])
	for i, c := range prod[N:] {
		out[i] += c
	}
}

// linear evaluates the linear convolution out = a * b with len(a) = len(b) = n
// and len(out) = 2n-1.
func (k karatsuba) linear(a, b, out []int64) {

	n := len(a)

	if n <= k.threshold {
		for i := range out {
			out[i] = 0
		}
		for i, ai := range a {
			row := out[i : i+n]
			for j := range row {
				row[j] += ai * b[j]
			}
		}
		return
	}

	h := n >> 1
	m := n - h // m >= h

	// z0 = a_lo * b_lo, of length 2h-1
	z0 := make([]int64, 2*h-1)
	k.linear(a[:h], b[:h], z0)

	// z2 = a_hi * b_hi, of length 2m-1
	z2 := make([]int64, 2*m-1)
	k.linear(a[h:], b[h:], z2)

	// z1 = (a_lo + a_hi) * (b_lo + b_hi) - z0 - z2
	sa, sb := make([]int64, m), make([]int64, m)
	copy(sa, a[h:])
	copy(sb, b[h:])
	for i := 0; i < h; i++ {
		sa[i] += a[i]
		sb[i] += b[i]
	}

	z1 := make([]int64, 2*m-1)
	k.linear(sa, sb, z1)

	for i := range z0 {
		z1[i] -= z0[i]
	}
	for i := range z2 {
		z1[i] -= z2[i]
	}

	for i := range out {
		out[i] = 0
	}
	copy(out, z0)
	for i, c := range z1 {
		out[i+h] += c
	}
	for i, c := range z2 {
		out[i+2*h] += c
	}
}
