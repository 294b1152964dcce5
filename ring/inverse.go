package ring

import (
	"fmt"

	"github.com/tuneinsight/ntru/utils"
)

// almostInverse runs the almost-inverse algorithm over GF(p)[x]/(x^N - 1) for p in {2, 3}
// on the coefficients of a (reduced modulo p into [0, p)). It returns the inverse with
// coefficients in [0, p), or false if a is not invertible.
func almostInverse(a []int64, p int8) (inv []int64, ok bool) {

	N := len(a)

	// All buffers have N+1 coefficients: g starts as x^N - 1.
	b := make([]int8, N+1)
	c := make([]int8, N+1)
	f := make([]int8, N+1)
	g := make([]int8, N+1)

	b[0] = 1
	for i := range a {
		f[i] = int8(a[i])
	}
	g[0] = p - 1
	g[N] = 1

	degF, degG := degree(f), N
	k := 0

	for {
		if degF < 0 {
			return nil, false
		}

		for f[0] == 0 {
			// f = f/x, c = c*x
			copy(f, f[1:])
			f[N] = 0
			copy(c[1:], c[:N])
			c[0] = 0
			degF--
			k++
		}

		if degF == 0 {
			break
		}

		if degF < degG {
			f, g = g, f
			b, c = c, b
			degF, degG = degG, degF
		}

		// Cancel the constant coefficient of f.
		if p == 2 || f[0] != g[0] {
			addMod(f, g, p)
			addMod(b, c, p)
		} else {
			subMod(f, g, p)
			subMod(b, c, p)
		}

		for degF >= 0 && f[degF] == 0 {
			degF--
		}
	}

	if b[N] != 0 {
		return nil, false
	}

	// f is now the constant f[0], which is its own inverse for p in {2, 3}.
	inv = make([]int64, N)
	for i := range inv {
		inv[i] = int64(b[i]) * int64(f[0]) % int64(p)
	}

	// inverse = x^(N-k) * b(x)
	utils.RotateSliceInPlace(inv, k%N)

	return inv, true
}

func degree(f []int8) int {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] != 0 {
			return i
		}
	}
	return -1
}

func addMod(f, g []int8, p int8) {
	for i := range f {
		f[i] = (f[i] + g[i]) % p
	}
}

func subMod(f, g []int8, p int8) {
	for i := range f {
		f[i] = (f[i] - g[i] + p) % p
	}
}

// InvertMod2 returns the inverse of a modulo 2 in GF(2)[x]/(x^N - 1), with
// coefficients in {0, 1}.
func InvertMod2(a Poly) (Poly, error) {
	f := NewPoly(a.N())
	for i, c := range a.Coeffs {
		f.Coeffs[i] = c & 1
	}
	inv, ok := almostInverse(f.Coeffs, 2)
	if !ok {
		return Poly{}, fmt.Errorf("%w modulo 2", ErrNotInvertible)
	}
	return Poly{Coeffs: inv}, nil
}

// InvertMod3 returns the inverse of f modulo 3 with coefficients in {0, 1, 2}.
// A lifted f = 1 + 3T is congruent to 1 and is its own inverse.
func (r *Ring) InvertMod3(f SecretPoly) (Poly, error) {

	if err := f.Validate(); err != nil {
		return Poly{}, err
	}

	if f.T.Degree() != r.n {
		return Poly{}, fmt.Errorf("%w: private polynomial of degree %d, ring has N=%d", ErrInvalidInput, f.T.Degree(), r.n)
	}

	if f.Lifted {
		one := r.NewPoly()
		one.Coeffs[0] = 1
		return one, nil
	}

	a := f.Dense()
	r.Mod3(a, a)

	inv, ok := almostInverse(a.Coeffs, P)
	if !ok {
		return Poly{}, fmt.Errorf("%w modulo 3", ErrNotInvertible)
	}

	return Poly{Coeffs: inv}, nil
}

// InvertModQ returns the inverse of f modulo q with coefficients in [0, q).
//
// The inverse modulo 2 is lifted by Newton iteration fq = fq * (2 - f * fq), each round
// squaring the modulus for which fq is correct (2, 4, 16, 256, ...) until it reaches q.
// The products by f are sparse.
func (r *Ring) InvertModQ(f SecretPoly) (fq Poly, err error) {

	if err = f.Validate(); err != nil {
		return
	}

	if f.T.Degree() != r.n {
		return Poly{}, fmt.Errorf("%w: private polynomial of degree %d, ring has N=%d", ErrInvalidInput, f.T.Degree(), r.n)
	}

	if fq, err = InvertMod2(f.Dense()); err != nil {
		return
	}

	t := r.NewPoly()

	for v := int64(2); v < r.q; v *= v {

		if err = r.MulSecret(fq, f, t); err != nil {
			return
		}

		r.Neg(t, t)
		t.Coeffs[0] += 2

		if err = r.MulPoly(fq, t, fq); err != nil {
			return
		}
	}

	if err = r.MulSecret(fq, f, t); err != nil {
		return
	}

	if !t.IsOne() {
		return Poly{}, fmt.Errorf("%w modulo %d", ErrNotInvertible, r.q)
	}

	return
}

// InvertPolyModQ returns the inverse of a dense polynomial modulo q with coefficients in [0, q).
func (r *Ring) InvertPolyModQ(a Poly) (fq Poly, err error) {

	if err = r.checkPoly(a); err != nil {
		return
	}

	if fq, err = InvertMod2(a); err != nil {
		return
	}

	t := r.NewPoly()

	for v := int64(2); v < r.q; v *= v {

		if err = r.MulPoly(fq, a, t); err != nil {
			return
		}

		r.Neg(t, t)
		t.Coeffs[0] += 2

		if err = r.MulPoly(fq, t, fq); err != nil {
			return
		}
	}

	if err = r.MulPoly(fq, a, t); err != nil {
		return
	}

	if !t.IsOne() {
		return Poly{}, fmt.Errorf("%w modulo %d", ErrNotInvertible, r.q)
	}

	return
}
