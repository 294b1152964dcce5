package ring

import (
	"fmt"

	"github.com/tuneinsight/ntru/utils"
)

// PackedLen returns the number of bytes of N coefficients packed on bits bits each.
func PackedLen(N, bits int) int {
	return utils.CeilDiv(N*bits, 8)
}

// EncodedLen returns the number of bytes of an encoded polynomial of the ring, ceil(N*log2(q)/8).
func (r *Ring) EncodedLen() int {
	return PackedLen(r.n, r.logQ)
}

// Encode writes the coefficients of p, reduced modulo q, on log2(q) bits each,
// most significant bit first, and returns the number of bytes written.
func (r *Ring) Encode(p Poly, data []byte) (n int, err error) {

	if err = r.checkPoly(p); err != nil {
		return
	}

	if n = r.EncodedLen(); len(data) < n {
		return 0, fmt.Errorf("cannot Encode: %w (%d < %d)", ErrShortBuffer, len(data), n)
	}

	packBits(p.Coeffs, r.mask, r.logQ, data[:n])

	return
}

// Decode reads the coefficients of p from data, as written by Encode,
// and returns the number of bytes read.
func (r *Ring) Decode(data []byte, p Poly) (n int, err error) {

	if err = r.checkPoly(p); err != nil {
		return
	}

	if n = r.EncodedLen(); len(data) < n {
		return 0, fmt.Errorf("cannot Decode: %w (%d < %d)", ErrShortBuffer, len(data), n)
	}

	unpackBits(data[:n], r.logQ, p.Coeffs)

	return
}

// PackMod4 returns the coefficients of p modulo 4 packed on 2 bits each, four
// coefficients per byte, most significant bits first.
func PackMod4(p Poly) []byte {
	data := make([]byte, PackedLen(p.N(), 2))
	packBits(p.Coeffs, 3, 2, data)
	return data
}

// PackIndices writes the indices on bits bits each, most significant bit first.
func PackIndices(idx []int, bits int) []byte {
	v := make([]int64, len(idx))
	for i := range idx {
		v[i] = int64(idx[i])
	}
	data := make([]byte, PackedLen(len(v), bits))
	packBits(v, 1<<bits-1, bits, data)
	return data
}

// UnpackIndices reads count indices of bits bits each from data.
func UnpackIndices(data []byte, count, bits int) ([]int, error) {
	if n := PackedLen(count, bits); len(data) < n {
		return nil, fmt.Errorf("cannot UnpackIndices: %w (%d < %d)", ErrShortBuffer, len(data), n)
	}
	v := make([]int64, count)
	unpackBits(data, bits, v)
	idx := make([]int, count)
	for i := range v {
		idx[i] = int(v[i])
	}
	return idx, nil
}

// packBits writes values & mask on bits bits each into data, most significant bit first.
// Trailing bits of the last byte are zero.
func packBits(values []int64, mask int64, bits int, data []byte) {

	for i := range data {
		data[i] = 0
	}

	var acc uint64
	var accBits, j int

	for _, v := range values {
		acc = acc<<bits | uint64(v&mask)
		accBits += bits
		for accBits >= 8 {
			accBits -= 8
			data[j] = byte(acc >> accBits)
			j++
		}
	}

	if accBits > 0 {
		data[j] = byte(acc << (8 - accBits))
	}
}

// unpackBits reads len(values) values of bits bits each from data, most significant bit first.
func unpackBits(data []byte, bits int, values []int64) {

	var acc uint64
	var accBits, j int
	mask := uint64(1)<<bits - 1

	for i := range values {
		for accBits < bits {
			acc = acc<<8 | uint64(data[j])
			j++
			accBits += 8
		}
		accBits -= bits
		values[i] = int64((acc >> accBits) & mask)
	}
}
