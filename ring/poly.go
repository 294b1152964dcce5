package ring

import (
	"fmt"
	"strings"
)

// Poly is a dense polynomial of Z[x]/(x^N - 1). Coefficients are signed and are
// only brought into a canonical range by an explicit reduction.
type Poly struct {
	Coeffs []int64
}

// NewPoly creates a new polynomial with N coefficients set to zero.
func NewPoly(N int) Poly {
	return Poly{Coeffs: make([]int64, N)}
}

// NewPolyFromCoeffs creates a new polynomial with a copy of the given coefficients.
func NewPolyFromCoeffs(coeffs []int64) Poly {
	p := NewPoly(len(coeffs))
	copy(p.Coeffs, coeffs)
	return p
}

// N returns the number of coefficients of the polynomial.
func (p Poly) N() int {
	return len(p.Coeffs)
}

// Zero sets all coefficients of the target polynomial to 0.
func (p Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// CopyNew creates an exact copy of the target polynomial.
func (p Poly) CopyNew() Poly {
	return NewPolyFromCoeffs(p.Coeffs)
}

// Copy copies the coefficients of p1 on the target polynomial.
func (p Poly) Copy(p1 Poly) {
	copy(p.Coeffs, p1.Coeffs)
}

// Equal returns true if the receiver and other have the same coefficients.
// It checks for strict equality, not congruence.
func (p Poly) Equal(other Poly) bool {
	if len(p.Coeffs) != len(other.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if p.Coeffs[i] != other.Coeffs[i] {
			return false
		}
	}
	return true
}

// IsOne returns true if the polynomial is the constant 1.
func (p Poly) IsOne() bool {
	if len(p.Coeffs) == 0 || p.Coeffs[0] != 1 {
		return false
	}
	for _, c := range p.Coeffs[1:] {
		if c != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of coefficients equal to v.
func (p Poly) Count(v int64) (cnt int) {
	for _, c := range p.Coeffs {
		if c == v {
			cnt++
		}
	}
	return
}

func (p Poly) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, c := range p.Coeffs {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d", c)
	}
	sb.WriteString("]")
	return sb.String()
}
