package ntru

import (
	"github.com/tuneinsight/ntru/ring"
)

// genMask is the mask generation function: it fills out with trits derived from
// Z = H(seed) and the blocks H(Z || counter). Each byte below 3^5 yields five
// base-3 digits, least significant first, with the digit 2 mapped to -1.
// The first MinCallsMask blocks are hashed in one batch.
func genMask(params Parameters, seed []byte, out ring.Poly) {

	h := params.Hash()
	z := h.Sum(seed)

	in := make([][]byte, params.MinCallsMask())
	for i := range in {
		in[i] = counterBlock(z, uint32(i))
	}

	blocks := h.SumBatch(in)
	counter := uint32(len(in))

	N := out.N()
	cur := 0

	for {
		for _, block := range blocks {
			for _, o := range block {
				if o >= 243 {
					continue
				}
				for j := 0; j < 5; j++ {
					d := int64(o % 3)
					if d == 2 {
						d = -1
					}
					out.Coeffs[cur] = d
					o /= 3
					if cur++; cur == N {
						return
					}
				}
			}
		}

		blocks = [][]byte{h.Sum(counterBlock(z, counter))}
		counter++
	}
}
