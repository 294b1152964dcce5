package ntru

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/tuneinsight/ntru/ring"
)

// Each group of 3 bits of a padded message is mapped to 2 trits. The pair (-1, -1)
// has no preimage.
var bitsToTritsTable = [8][2]int64{
	{0, 0}, {0, 1}, {0, -1},
	{1, 0}, {1, 1}, {1, -1},
	{-1, 0}, {-1, 1},
}

// tritGroups returns the number of 3-bit groups of a buffer of n bytes.
func tritGroups(n int) int {
	return (8*n + 2) / 3
}

// bitsToTrits writes the trits of data into out, starting from the most significant
// bit of data[0]. The last group is completed with zero bits, and the coefficients
// of out past the trits are set to zero.
func bitsToTrits(data []byte, out ring.Poly) {

	out.Zero()

	var acc uint32
	var accBits, j int

	for g := 0; g < tritGroups(len(data)); g++ {
		if accBits < 3 {
			acc <<= 8
			if j < len(data) {
				acc |= uint32(data[j])
			}
			j++
			accBits += 8
		}
		accBits -= 3
		t := bitsToTritsTable[(acc>>accBits)&7]
		out.Coeffs[2*g] = t[0]
		out.Coeffs[2*g+1] = t[1]
	}
}

// tritIndex maps a centered trit to its digit: 0 -> 0, 1 -> 1, -1 -> 2.
func tritIndex(t int64) uint32 {
	return uint32((t + 3) % 3)
}

// tritsToBits is the inverse of bitsToTrits: it reads the trits of the first
// tritGroups(len(out)) pairs of coefficients of p, centered modulo 3, into out.
// It returns 1 if every pair is valid and the bits completing the last group are
// zero, and 0 otherwise, in time independent of the content of p.
func tritsToBits(p ring.Poly, out []byte) (valid int) {

	groups := tritGroups(len(out))
	buf := make([]byte, (3*groups+7)/8)

	valid = 1

	var acc uint32
	var accBits, j int

	for g := 0; g < groups; g++ {
		v := 3*tritIndex(p.Coeffs[2*g]) + tritIndex(p.Coeffs[2*g+1])
		valid &= 1 ^ subtle.ConstantTimeEq(int32(v), 8)
		acc = acc<<3 | v&7
		accBits += 3
		if accBits >= 8 {
			accBits -= 8
			buf[j] = byte(acc >> accBits)
			j++
		}
	}

	if accBits > 0 {
		buf[j] = byte(acc << (8 - accBits))
	}

	copy(out, buf)

	var stray byte
	for _, b := range buf[len(out):] {
		stray |= b
	}

	return valid & subtle.ConstantTimeByteEq(stray, 0)
}

// checkWeight returns 1 if p, centered modulo 3, has at least dm0 coefficients equal
// to each of -1, 0 and 1, and 0 otherwise, in time independent of the content of p.
func checkWeight(p ring.Poly, dm0 int) int {
	var count [3]int32
	for _, c := range p.Coeffs {
		count[0] += int32(subtle.ConstantTimeEq(int32(c), -1))
		count[1] += int32(subtle.ConstantTimeEq(int32(c), 0))
		count[2] += int32(subtle.ConstantTimeEq(int32(c), 1))
	}
	ok := 1
	for _, c := range count {
		ok &= subtle.ConstantTimeLessOrEq(dm0, int(c))
	}
	return ok
}

// blindingSeed returns the seed of the blinding polynomial: OID || msg || b || htrunc,
// where htrunc is the first PkLen/8 bytes of the encoded public key.
func blindingSeed(params Parameters, msg, b, htrunc []byte) []byte {
	oid := params.OID()
	seed := make([]byte, 0, len(oid)+len(msg)+len(b)+len(htrunc))
	seed = append(seed, oid[:]...)
	seed = append(seed, msg...)
	seed = append(seed, b...)
	return append(seed, htrunc...)
}

// counterBlock returns z || counter, with counter on 4 bytes big endian.
func counterBlock(z []byte, counter uint32) []byte {
	in := make([]byte, len(z)+4)
	copy(in, z)
	binary.BigEndian.PutUint32(in[len(z):], counter)
	return in
}
