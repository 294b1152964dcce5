package ntru

import (
	"fmt"

	"github.com/tuneinsight/ntru/random"
	"github.com/tuneinsight/ntru/ring"
)

// indexGenerator is the index generation function: it reads candidate indices of C bits,
// most significant bit first, from the hash stream H(seed || 0) || H(seed || 1) || ...,
// and rejects candidates above the largest multiple of N below 2^C.
// It implements ring.IndexSource.
type indexGenerator struct {
	stream    *random.Context
	n, c      int
	hlen      int
	threshold uint64
	buf       []byte
	ptr       int
	acc       uint64
	accBits   int
}

func newIndexGenerator(params Parameters, seed []byte) (igf *indexGenerator, err error) {

	igf = &indexGenerator{
		n:    params.N(),
		c:    params.C(),
		hlen: params.Hash().Size(),
	}

	igf.threshold = uint64(1)<<igf.c - (uint64(1)<<igf.c)%uint64(igf.n)

	if igf.stream, err = random.NewDeterministicContext(random.HashStream(params.Hash()), seed); err != nil {
		return nil, err
	}

	// The first MinCallsR blocks are always consumed.
	if igf.buf, err = igf.stream.Generate(params.MinCallsR() * params.Hash().Size()); err != nil {
		igf.Close()
		return nil, err
	}

	return
}

// NextIndex returns the next index in [0, N).
func (igf *indexGenerator) NextIndex() (int, error) {
	for {
		for igf.accBits < igf.c {
			if igf.ptr == len(igf.buf) {
				// One block at a time past the prefetched ones.
				igf.buf = igf.buf[:igf.hlen]
				if _, err := igf.stream.Read(igf.buf); err != nil {
					return 0, err
				}
				igf.ptr = 0
			}
			igf.acc = igf.acc<<8 | uint64(igf.buf[igf.ptr])
			igf.ptr++
			igf.accBits += 8
		}

		igf.accBits -= igf.c
		i := (igf.acc >> igf.accBits) & (uint64(1)<<igf.c - 1)
		igf.acc &= uint64(1)<<igf.accBits - 1

		if i < igf.threshold {
			return int(i % uint64(igf.n)), nil
		}
	}
}

// Close releases the hash stream.
func (igf *indexGenerator) Close() {
	igf.stream.Close()
}

// genBlindingPoly derives the blinding polynomial r from seed. r has the shape of a
// balanced private polynomial: Df ones and minus ones, or product form with
// (Df1, Df2, Df3) ones and minus ones per component.
func genBlindingPoly(params Parameters, seed []byte) (ring.PrivatePoly, error) {

	igf, err := newIndexGenerator(params, seed)
	if err != nil {
		return nil, fmt.Errorf("cannot genBlindingPoly: %w", err)
	}
	defer igf.Close()

	sampler := ring.NewTernarySampler(igf, params.N())

	if params.ProductForm() {
		f, err := sampler.ReadProductForm(params.Df1(), params.Df2(), params.Df3(), params.Df3())
		if err != nil {
			return nil, fmt.Errorf("cannot genBlindingPoly: %w", err)
		}
		return f, nil
	}

	t, err := sampler.ReadTernary(params.Df(), params.Df())
	if err != nil {
		return nil, fmt.Errorf("cannot genBlindingPoly: %w", err)
	}

	return t, nil
}
