package random

import (
	"golang.org/x/crypto/blake2b"
)

// Blake2b is a deterministic provider whose output is the BLAKE2b XOF of its seed.
// Backward sequence security (given block i, compute block i-1) always holds;
// forward security holds because the seed is also used as the XOF key.
var Blake2b Generator = blake2bGenerator{}

type blake2bGenerator struct{}

func (blake2bGenerator) Name() string        { return "blake2b" }
func (blake2bGenerator) Deterministic() bool { return true }

func (blake2bGenerator) New(seed []byte) (State, error) {

	var err error
	if seed == nil {
		if seed, err = systemSeed(32); err != nil {
			return nil, err
		}
	}

	// The XOF key is limited to 64 bytes; longer seeds key the XOF with their digest.
	key := seed
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(seed)
		key = sum[:]
	}

	prng := new(blake2bState)
	if prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key); err != nil {
		return nil, err
	}

	if _, err = prng.xof.Write(seed); err != nil {
		return nil, err
	}

	return prng, nil
}

type blake2bState struct {
	xof blake2b.XOF
}

func (prng *blake2bState) Read(p []byte) (n int, err error) {
	return prng.xof.Read(p)
}

func (prng *blake2bState) Close() error {
	prng.xof.Reset()
	prng.xof = nil
	return nil
}
