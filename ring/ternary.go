package ring

import (
	"fmt"

	"github.com/tuneinsight/ntru/utils"
)

// Ternary is a sparse polynomial with coefficients in {-1, 0, 1}, stored as the
// sorted positions of its +1 and -1 coefficients.
type Ternary struct {
	N       int
	Ones    []int
	NegOnes []int
}

// ProductForm is the polynomial F1*F2 + F3 of three ternary polynomials.
type ProductForm struct {
	F1, F2, F3 Ternary
}

// PrivatePoly is either a [Ternary] or a [ProductForm] polynomial.
// The set of implementations is closed.
type PrivatePoly interface {
	// Degree returns N.
	Degree() int
	// Validate checks the well-formedness of the index sets.
	Validate() error
	// Dense returns the integer coefficients of the polynomial.
	Dense() Poly
	// CopyNew returns a deep copy.
	CopyNew() PrivatePoly
	isPrivatePoly()
}

func (Ternary) isPrivatePoly()     {}
func (ProductForm) isPrivatePoly() {}

// Degree returns N.
func (t Ternary) Degree() int {
	return t.N
}

// Weight returns the number of non-zero coefficients.
func (t Ternary) Weight() int {
	return len(t.Ones) + len(t.NegOnes)
}

// Validate checks that the indices are in [0, N), strictly increasing within each
// set and that the two sets are disjoint.
func (t Ternary) Validate() error {

	if t.N < 1 || t.N > MaxN {
		return fmt.Errorf("%w: ternary polynomial of degree %d", ErrInvalidInput, t.N)
	}

	if t.Weight() > t.N {
		return fmt.Errorf("%w: ternary polynomial of weight %d > N=%d", ErrInvalidInput, t.Weight(), t.N)
	}

	for _, set := range [][]int{t.Ones, t.NegOnes} {
		if !utils.IsStrictlyIncreasing(set) {
			return fmt.Errorf("%w: ternary index set is not strictly increasing", ErrInvalidInput)
		}
		if len(set) > 0 && (set[0] < 0 || set[len(set)-1] >= t.N) {
			return fmt.Errorf("%w: ternary index out of [0, %d)", ErrInvalidInput, t.N)
		}
	}

	// Both sets are sorted: a linear merge finds any shared index.
	for i, j := 0, 0; i < len(t.Ones) && j < len(t.NegOnes); {
		switch {
		case t.Ones[i] == t.NegOnes[j]:
			return fmt.Errorf("%w: index %d is both +1 and -1", ErrInvalidInput, t.Ones[i])
		case t.Ones[i] < t.NegOnes[j]:
			i++
		default:
			j++
		}
	}

	return nil
}

// Dense returns the integer coefficients of the polynomial.
func (t Ternary) Dense() Poly {
	p := NewPoly(t.N)
	for _, i := range t.Ones {
		p.Coeffs[i] = 1
	}
	for _, i := range t.NegOnes {
		p.Coeffs[i] = -1
	}
	return p
}

// CopyNew returns a deep copy of the polynomial.
func (t Ternary) CopyNew() PrivatePoly {
	return t.copyNew()
}

func (t Ternary) copyNew() Ternary {
	return Ternary{
		N:       t.N,
		Ones:    append([]int{}, t.Ones...),
		NegOnes: append([]int{}, t.NegOnes...),
	}
}

// Equal returns true if both polynomials have the same index sets.
func (t Ternary) Equal(other Ternary) bool {
	if t.N != other.N || len(t.Ones) != len(other.Ones) || len(t.NegOnes) != len(other.NegOnes) {
		return false
	}
	for i := range t.Ones {
		if t.Ones[i] != other.Ones[i] {
			return false
		}
	}
	for i := range t.NegOnes {
		if t.NegOnes[i] != other.NegOnes[i] {
			return false
		}
	}
	return true
}

// NewTernaryFromPoly converts a dense polynomial with coefficients in {-1, 0, 1}.
func NewTernaryFromPoly(p Poly) (t Ternary, err error) {
	t.N = p.N()
	for i, c := range p.Coeffs {
		switch c {
		case 1:
			t.Ones = append(t.Ones, i)
		case -1:
			t.NegOnes = append(t.NegOnes, i)
		case 0:
		default:
			return Ternary{}, fmt.Errorf("%w: coefficient %d at index %d is not ternary", ErrInvalidInput, c, i)
		}
	}
	return
}

// Degree returns N.
func (f ProductForm) Degree() int {
	return f.F1.N
}

// Validate checks each component and that all components share the same degree.
func (f ProductForm) Validate() (err error) {
	if f.F2.N != f.F1.N || f.F3.N != f.F1.N {
		return fmt.Errorf("%w: product-form components have degrees %d, %d, %d", ErrInvalidInput, f.F1.N, f.F2.N, f.F3.N)
	}
	for _, t := range []Ternary{f.F1, f.F2, f.F3} {
		if err = t.Validate(); err != nil {
			return
		}
	}
	return
}

// Dense returns the integer coefficients of F1*F2 + F3.
func (f ProductForm) Dense() Poly {
	p := NewPoly(f.F1.N)
	mulTernaryLazy(f.F2.Dense(), f.F1, p)
	for _, i := range f.F3.Ones {
		p.Coeffs[i]++
	}
	for _, i := range f.F3.NegOnes {
		p.Coeffs[i]--
	}
	return p
}

// CopyNew returns a deep copy of the polynomial.
func (f ProductForm) CopyNew() PrivatePoly {
	return ProductForm{F1: f.F1.copyNew(), F2: f.F2.copyNew(), F3: f.F3.copyNew()}
}

// Equal returns true if all three components are equal.
func (f ProductForm) Equal(other ProductForm) bool {
	return f.F1.Equal(other.F1) && f.F2.Equal(other.F2) && f.F3.Equal(other.F3)
}

// SecretPoly is the private polynomial f of a key pair. It is given by a sparse
// polynomial T, either directly (f = T) or in lifted form (f = 1 + P*T), in which
// case f is congruent to 1 modulo P.
type SecretPoly struct {
	T      PrivatePoly
	Lifted bool
}

// Dense returns the integer coefficients of f.
func (f SecretPoly) Dense() Poly {
	p := f.T.Dense()
	if f.Lifted {
		for i := range p.Coeffs {
			p.Coeffs[i] *= P
		}
		p.Coeffs[0]++
	}
	return p
}

// Validate checks the underlying sparse polynomial.
func (f SecretPoly) Validate() error {
	if f.T == nil {
		return fmt.Errorf("%w: nil private polynomial", ErrInvalidInput)
	}
	return f.T.Validate()
}
