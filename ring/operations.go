package ring

// The operations of this file read and write the first N coefficients of their operands,
// which must all have at least N coefficients (as returned by NewPoly); shorter operands
// make them panic. Aliasing between inputs and outputs is allowed.

// Add evaluates p3 = p1 + p2 without reduction.
func (r *Ring) Add(p1, p2, p3 Poly) {
	a, b, c := p1.Coeffs[:r.n], p2.Coeffs[:r.n], p3.Coeffs[:r.n]
	for i := range c {
		c[i] = a[i] + b[i]
	}
}

// Sub evaluates p3 = p1 - p2 without reduction.
func (r *Ring) Sub(p1, p2, p3 Poly) {
	a, b, c := p1.Coeffs[:r.n], p2.Coeffs[:r.n], p3.Coeffs[:r.n]
	for i := range c {
		c[i] = a[i] - b[i]
	}
}

// Neg evaluates p2 = -p1 without reduction.
func (r *Ring) Neg(p1, p2 Poly) {
	a, b := p1.Coeffs[:r.n], p2.Coeffs[:r.n]
	for i := range b {
		b[i] = -a[i]
	}
}

// MulScalar evaluates p2 = p1 * scalar without reduction.
func (r *Ring) MulScalar(p1 Poly, scalar int64, p2 Poly) {
	a, b := p1.Coeffs[:r.n], p2.Coeffs[:r.n]
	for i := range b {
		b[i] = a[i] * scalar
	}
}

// Reduce evaluates p2 = p1 mod q with coefficients in [0, q).
func (r *Ring) Reduce(p1, p2 Poly) {
	r.ReduceMask(p1, r.mask, p2)
}

// ReduceMask evaluates p2 = p1 & mask. For mask = m-1 with m a power of two,
// this is the reduction modulo m into [0, m), including for negative coefficients.
func (r *Ring) ReduceMask(p1 Poly, mask int64, p2 Poly) {
	a, b := p1.Coeffs[:r.n], p2.Coeffs[:r.n]
	for i := range b {
		b[i] = a[i] & mask
	}
}

// Mod3 evaluates p2 = p1 mod 3 with coefficients in {0, 1, 2}.
func (r *Ring) Mod3(p1, p2 Poly) {
	r.Mod(p1, P, p2)
}

// Mod evaluates p2 = p1 mod modulus with coefficients in [0, modulus).
func (r *Ring) Mod(p1 Poly, modulus int64, p2 Poly) {
	a, b := p1.Coeffs[:r.n], p2.Coeffs[:r.n]
	for i := range b {
		c := a[i] % modulus
		if c < 0 {
			c += modulus
		}
		b[i] = c
	}
}

// Center evaluates p2 = p1 mod modulus with coefficients in [-modulus/2, modulus/2)
// for even moduli and in [-(modulus-1)/2, (modulus-1)/2] for odd moduli.
func (r *Ring) Center(p1 Poly, modulus int64, p2 Poly) {
	r.Mod(p1, modulus, p2)
	half := (modulus + 1) >> 1
	b := p2.Coeffs[:r.n]
	for i := range b {
		if b[i] >= half {
			b[i] -= modulus
		}
	}
}

// CenterQ evaluates p2 = p1 mod q with coefficients in [-q/2, q/2).
func (r *Ring) CenterQ(p1, p2 Poly) {
	r.Reduce(p1, p2)
	half := r.q >> 1
	b := p2.Coeffs[:r.n]
	for i := range b {
		if b[i] >= half {
			b[i] -= r.q
		}
	}
}

// Equal returns true if p1 and p2 are congruent modulo q.
func (r *Ring) Equal(p1, p2 Poly) bool {
	a, b := p1.Coeffs[:r.n], p2.Coeffs[:r.n]
	var diff int64
	for i := range a {
		diff |= (a[i] - b[i]) & r.mask
	}
	return diff == 0
}
