package ntru

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tuneinsight/ntru/random"
	"github.com/tuneinsight/ntru/ring"
)

// MaxKeyGenAttempts is the number of private (or g) polynomials sampled by the key
// generation before giving up with ErrNonInvertibleKey.
const MaxKeyGenAttempts = 100

// KeyGenerator generates NTRUEncrypt keys for a parameter set.
// Randomness is read from the io.Reader given to each call, typically a *random.Context.
// A KeyGenerator holds no mutable state and can be shared between goroutines, but the
// readers cannot.
type KeyGenerator struct {
	params Parameters
	logger *slog.Logger
}

// KeyGeneratorOption configures a KeyGenerator.
type KeyGeneratorOption func(*KeyGenerator)

// WithLogger sets the logger receiving debug records about resampled polynomials.
func WithLogger(logger *slog.Logger) KeyGeneratorOption {
	return func(kgen *KeyGenerator) {
		kgen.logger = logger
	}
}

// NewKeyGenerator creates a new KeyGenerator for the given parameters.
func NewKeyGenerator(params Parameters, opts ...KeyGeneratorOption) *KeyGenerator {
	kgen := &KeyGenerator{params: params}
	for _, opt := range opts {
		opt(kgen)
	}
	return kgen
}

func (kgen *KeyGenerator) debug(msg string, args ...any) {
	if kgen.logger != nil {
		kgen.logger.Debug(msg, append([]any{"params", kgen.params.String()}, args...)...)
	}
}

func (kgen *KeyGenerator) newSampler(rnd io.Reader) *ring.TernarySampler {
	N := kgen.params.N()
	return ring.NewTernarySampler(ring.NewUniformIndexSource(rnd, N), N)
}

// GenKeyPair generates a new key pair.
func (kgen *KeyGenerator) GenKeyPair(rnd io.Reader) (kp *KeyPair, err error) {

	sampler := kgen.newSampler(rnd)

	sk, fq, err := kgen.genPrivateKey(sampler)
	if err != nil {
		return nil, fmt.Errorf("cannot GenKeyPair: %w", err)
	}

	pk, err := kgen.genPublicKey(sampler, fq)
	if err != nil {
		return nil, fmt.Errorf("cannot GenKeyPair: %w", err)
	}

	return &KeyPair{Private: sk, Public: pk}, nil
}

// GenKeyPairMulti generates one private key and count public keys for it, each
// from an independent polynomial g.
func (kgen *KeyGenerator) GenKeyPairMulti(rnd io.Reader, count int) (sk *PrivateKey, pks []*PublicKey, err error) {

	if count < 1 {
		return nil, nil, fmt.Errorf("cannot GenKeyPairMulti: %w: count=%d must be positive", ErrInvalidParameter, count)
	}

	sampler := kgen.newSampler(rnd)

	var fq ring.Poly
	if sk, fq, err = kgen.genPrivateKey(sampler); err != nil {
		return nil, nil, fmt.Errorf("cannot GenKeyPairMulti: %w", err)
	}

	pks = make([]*PublicKey, count)
	for i := range pks {
		if pks[i], err = kgen.genPublicKey(sampler, fq); err != nil {
			return nil, nil, fmt.Errorf("cannot GenKeyPairMulti: %w", err)
		}
	}

	return
}

// GenPublicKey generates an additional public key for an existing private key.
func (kgen *KeyGenerator) GenPublicKey(sk *PrivateKey, rnd io.Reader) (*PublicKey, error) {

	if !sk.params.Equal(kgen.params) {
		return nil, fmt.Errorf("cannot GenPublicKey: %w: private key of %v, generator of %v", ErrInvalidParameter, sk.params, kgen.params)
	}

	fq, err := kgen.params.Ring().InvertModQ(sk.F)
	if err != nil {
		return nil, fmt.Errorf("cannot GenPublicKey: %w: %v", ErrNonInvertibleKey, err)
	}

	pk, err := kgen.genPublicKey(kgen.newSampler(rnd), fq)
	if err != nil {
		return nil, fmt.Errorf("cannot GenPublicKey: %w", err)
	}

	return pk, nil
}

// samplePrivatePoly samples the sparse part T of a private polynomial. The additive
// component of a non-lifted polynomial has one minus one fewer than its ones.
func (kgen *KeyGenerator) samplePrivatePoly(sampler *ring.TernarySampler) (ring.PrivatePoly, error) {
	w := kgen.params.privateWeights()
	if kgen.params.ProductForm() {
		return sampler.ReadProductForm(w[0][0], w[1][0], w[2][0], w[2][1])
	}
	return sampler.ReadTernary(w[0][0], w[0][1])
}

// genPrivateKey samples private polynomials until one is invertible modulo q and 3,
// and returns the private key with the inverse modulo q of its polynomial.
func (kgen *KeyGenerator) genPrivateKey(sampler *ring.TernarySampler) (sk *PrivateKey, fq ring.Poly, err error) {

	r := kgen.params.Ring()

	for attempt := 1; attempt <= MaxKeyGenAttempts; attempt++ {

		var T ring.PrivatePoly
		if T, err = kgen.samplePrivatePoly(sampler); err != nil {
			return nil, ring.Poly{}, randomnessError(err)
		}

		f := ring.SecretPoly{T: T, Lifted: kgen.params.Lifted()}

		if fq, err = r.InvertModQ(f); err != nil {
			if errors.Is(err, ring.ErrNotInvertible) {
				kgen.debug("resampling private polynomial", "attempt", attempt, "err", err)
				continue
			}
			return nil, ring.Poly{}, err
		}

		var fp ring.Poly
		if fp, err = r.InvertMod3(f); err != nil {
			if errors.Is(err, ring.ErrNotInvertible) {
				kgen.debug("resampling private polynomial", "attempt", attempt, "err", err)
				continue
			}
			return nil, ring.Poly{}, err
		}

		kgen.debug("generated private polynomial", "attempts", attempt)

		return &PrivateKey{params: kgen.params, F: f, Fp: fp}, fq, nil
	}

	return nil, ring.Poly{}, fmt.Errorf("%w: private polynomial after %d attempts", ErrNonInvertibleKey, MaxKeyGenAttempts)
}

// genPublicKey samples g with Dg ones and Dg-1 minus ones until it is invertible,
// and returns the public key h = 3*g*fq mod q.
func (kgen *KeyGenerator) genPublicKey(sampler *ring.TernarySampler, fq ring.Poly) (*PublicKey, error) {

	r := kgen.params.Ring()
	dg := kgen.params.Dg()

	for attempt := 1; attempt <= MaxKeyGenAttempts; attempt++ {

		g, err := sampler.ReadTernary(dg, dg-1)
		if err != nil {
			return nil, randomnessError(err)
		}

		if _, err = ring.InvertMod2(g.Dense()); err != nil {
			kgen.debug("resampling g", "attempt", attempt, "err", err)
			continue
		}

		pk := NewPublicKey(kgen.params)
		if err = r.MulTernary(fq, g, pk.H); err != nil {
			return nil, err
		}
		r.MulScalar(pk.H, ring.P, pk.H)
		r.Reduce(pk.H, pk.H)

		kgen.debug("generated public polynomial", "attempts", attempt)

		return pk, nil
	}

	return nil, fmt.Errorf("%w: g after %d attempts", ErrNonInvertibleKey, MaxKeyGenAttempts)
}

// randomnessError wraps the errors of readers that are not a *random.Context.
func randomnessError(err error) error {
	if errors.Is(err, ErrRandomnessUnavailable) || errors.Is(err, random.ErrReleased) || errors.Is(err, ring.ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
}
