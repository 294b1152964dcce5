package ring

import (
	"fmt"

	"github.com/tuneinsight/ntru/utils"
)

// mulTernaryLazy evaluates out = a * t in Z[x]/(x^N - 1) without reduction.
// out must not alias a. Indices of t are assumed valid.
func mulTernaryLazy(a Poly, t Ternary, out Poly) {

	N := len(a.Coeffs)
	ac, c := a.Coeffs, out.Coeffs[:N]

	for i := range c {
		c[i] = 0
	}

	// x^k * a(x) is a rotated right by k positions.
	for _, k := range t.Ones {
		hi, lo := c[k:], c[:k]
		for j := range hi {
			hi[j] += ac[j]
		}
		for j := range lo {
			lo[j] += ac[N-k+j]
		}
	}

	for _, k := range t.NegOnes {
		hi, lo := c[k:], c[:k]
		for j := range hi {
			hi[j] -= ac[j]
		}
		for j := range lo {
			lo[j] -= ac[N-k+j]
		}
	}
}

func (r *Ring) checkTernary(t Ternary) error {
	if t.N != r.n {
		return fmt.Errorf("%w: ternary polynomial of degree %d, ring has N=%d", ErrInvalidInput, t.N, r.n)
	}
	return t.Validate()
}

// scratch returns a buffer for out if out aliases one of the inputs, else out itself.
func scratch(out Poly, in ...Poly) Poly {
	for i := range in {
		if utils.Alias1D(out.Coeffs, in[i].Coeffs) {
			return NewPoly(len(out.Coeffs))
		}
	}
	return out
}

// MulTernary evaluates out = a * t mod q with coefficients in [0, q).
// The cost is O(N * weight(t)).
func (r *Ring) MulTernary(a Poly, t Ternary, out Poly) (err error) {

	if err = r.checkPoly(a, out); err != nil {
		return
	}

	if err = r.checkTernary(t); err != nil {
		return
	}

	buf := scratch(out, a)
	mulTernaryLazy(a, t, buf)
	r.Reduce(buf, out)
	return
}

// MulProduct evaluates out = a * (F1*F2 + F3) mod q with coefficients in [0, q),
// as (a*F1)*F2 + a*F3, using three sparse multiplications.
func (r *Ring) MulProduct(a Poly, f ProductForm, out Poly) (err error) {

	if err = r.checkPoly(a, out); err != nil {
		return
	}

	for _, t := range []Ternary{f.F1, f.F2, f.F3} {
		if err = r.checkTernary(t); err != nil {
			return
		}
	}

	t1, t2 := r.NewPoly(), r.NewPoly()

	mulTernaryLazy(a, f.F1, t1)
	r.Reduce(t1, t1)
	mulTernaryLazy(t1, f.F2, t2)
	mulTernaryLazy(a, f.F3, t1)
	r.Add(t1, t2, t2)
	r.Reduce(t2, out)

	return
}

// MulPrivate evaluates out = a * f mod q with coefficients in [0, q), dispatching on
// the representation of f.
func (r *Ring) MulPrivate(a Poly, f PrivatePoly, out Poly) error {
	switch f := f.(type) {
	case Ternary:
		return r.MulTernary(a, f, out)
	case ProductForm:
		return r.MulProduct(a, f, out)
	default:
		return fmt.Errorf("%w: unknown private polynomial %T", ErrInvalidInput, f)
	}
}

// MulSecret evaluates out = a * f mod q with coefficients in [0, q).
// For a lifted f = 1 + 3T, this is a + 3*(a*T).
func (r *Ring) MulSecret(a Poly, f SecretPoly, out Poly) (err error) {

	if !f.Lifted {
		return r.MulPrivate(a, f.T, out)
	}

	buf := r.NewPoly()
	if err = r.MulPrivate(a, f.T, buf); err != nil {
		return
	}

	r.MulScalar(buf, P, buf)
	r.Add(buf, a, buf)
	r.Reduce(buf, out)
	return
}

// MulPoly evaluates out = a * b mod q with coefficients in [0, q), using the dense
// multiplication strategy of the ring.
func (r *Ring) MulPoly(a, b, out Poly) (err error) {

	if err = r.checkPoly(a, b, out); err != nil {
		return
	}

	r.mul.MulCoeffs(a.Coeffs, b.Coeffs, out.Coeffs)
	r.Reduce(out, out)
	return
}

// MulPolyLazy evaluates out = a * b without reduction.
// Coefficients must be small enough for the products to fit on 63 bits.
func (r *Ring) MulPolyLazy(a, b, out Poly) (err error) {
	if err = r.checkPoly(a, b, out); err != nil {
		return
	}
	r.mul.MulCoeffs(a.Coeffs, b.Coeffs, out.Coeffs)
	return
}
