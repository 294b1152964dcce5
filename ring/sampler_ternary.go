package ring

import (
	"fmt"
	"io"
	"sort"
)

// IndexSource produces uniformly distributed coefficient indices.
type IndexSource interface {
	// NextIndex returns an index in [0, N).
	NextIndex() (int, error)
}

// uniformIndexSource draws 16-bit big-endian values from a byte stream and rejects
// those above the largest multiple of N to keep the distribution uniform.
type uniformIndexSource struct {
	r         io.Reader
	n         int
	threshold int
	buf       []byte
	ptr       int
}

// NewUniformIndexSource returns an IndexSource of indices in [0, N) drawn from r.
// Bytes are read from r in batches.
func NewUniformIndexSource(r io.Reader, N int) IndexSource {
	return &uniformIndexSource{
		r:         r,
		n:         N,
		threshold: (1 << 16) - (1<<16)%N,
		buf:       make([]byte, 2*N),
		ptr:       2 * N,
	}
}

func (s *uniformIndexSource) NextIndex() (int, error) {
	for {
		if s.ptr == len(s.buf) {
			if _, err := io.ReadFull(s.r, s.buf); err != nil {
				return 0, err
			}
			s.ptr = 0
		}
		v := int(s.buf[s.ptr])<<8 | int(s.buf[s.ptr+1])
		s.ptr += 2
		if v < s.threshold {
			return v % s.n, nil
		}
	}
}

// TernarySampler samples sparse ternary polynomials of degree N with a fixed
// number of +1 and -1 coefficients.
type TernarySampler struct {
	src IndexSource
	n   int
	occ []bool
}

// NewTernarySampler creates a new TernarySampler reading indices from src.
func NewTernarySampler(src IndexSource, N int) *TernarySampler {
	return &TernarySampler{src: src, n: N, occ: make([]bool, N)}
}

// ReadTernary samples a polynomial with ones coefficients equal to 1 and negOnes
// coefficients equal to -1, placed uniformly at random.
func (ts *TernarySampler) ReadTernary(ones, negOnes int) (t Ternary, err error) {

	if ones < 0 || negOnes < 0 || ones+negOnes > ts.n {
		return Ternary{}, fmt.Errorf("%w: cannot sample %d+%d non-zero coefficients out of N=%d", ErrInvalidInput, ones, negOnes, ts.n)
	}

	for i := range ts.occ {
		ts.occ[i] = false
	}

	t.N = ts.n

	if t.Ones, err = ts.readIndices(ones); err != nil {
		return Ternary{}, err
	}

	if t.NegOnes, err = ts.readIndices(negOnes); err != nil {
		return Ternary{}, err
	}

	sort.Ints(t.Ones)
	sort.Ints(t.NegOnes)

	return
}

func (ts *TernarySampler) readIndices(count int) (idx []int, err error) {
	idx = make([]int, 0, count)
	for len(idx) < count {
		var i int
		if i, err = ts.src.NextIndex(); err != nil {
			return nil, err
		}
		if !ts.occ[i] {
			ts.occ[i] = true
			idx = append(idx, i)
		}
	}
	return
}

// ReadProductForm samples F1, F2 and F3 with d1, d2 and d3 coefficients equal to 1
// and d1, d2 and d3neg coefficients equal to -1 respectively.
func (ts *TernarySampler) ReadProductForm(d1, d2, d3, d3neg int) (f ProductForm, err error) {
	if f.F1, err = ts.ReadTernary(d1, d1); err != nil {
		return
	}
	if f.F2, err = ts.ReadTernary(d2, d2); err != nil {
		return
	}
	f.F3, err = ts.ReadTernary(d3, d3neg)
	return
}
