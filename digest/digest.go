// Package digest provides the hash functions used by NTRUEncrypt for index and mask generation.
// The core treats them as deterministic pseudorandom functions with no state of their own.
package digest

import (
	"crypto/sha1" // #nosec G505 -- SHA-1 is mandated by the EES*EP1 parameter sets as a PRF, not for collision resistance
	"fmt"

	sha256simd "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/tuneinsight/ntru/utils"
)

// Func is a fixed-output hash function.
type Func interface {
	// Name returns the registry name of the hash function.
	Name() string
	// Size returns the length in bytes of a digest.
	Size() int
	// Sum returns the digest of in.
	Sum(in []byte) []byte
	// SumBatch returns the digests of every input, in order.
	// Implementations may process several lanes at once.
	SumBatch(in [][]byte) [][]byte
}

// Registry names.
const (
	NameSHA1       = "sha1"
	NameSHA256     = "sha256"
	NameSHA3_256   = "sha3-256"
	NameBLAKE2b256 = "blake2b-256"
	NameBLAKE3     = "blake3"
)

var (
	SHA1       Func = sha1Func{}
	SHA256     Func = sha256Func{}
	SHA3_256   Func = sha3Func{}
	BLAKE2b256 Func = blake2bFunc{}
	BLAKE3     Func = blake3Func{}
)

var registry = map[string]Func{
	NameSHA1:       SHA1,
	NameSHA256:     SHA256,
	NameSHA3_256:   SHA3_256,
	NameBLAKE2b256: BLAKE2b256,
	NameBLAKE3:     BLAKE3,
}

// ByName returns the hash function registered under name.
func ByName(name string) (Func, error) {
	if h, ok := registry[name]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("unknown hash function %q", name)
}

// Names returns the sorted list of registered hash functions.
func Names() []string {
	return utils.GetSortedKeys(registry)
}

func sumBatch(h Func, in [][]byte) [][]byte {
	out := make([][]byte, len(in))
	for i := range in {
		out[i] = h.Sum(in[i])
	}
	return out
}

type sha1Func struct{}

func (sha1Func) Name() string { return NameSHA1 }
func (sha1Func) Size() int    { return sha1.Size }

func (sha1Func) Sum(in []byte) []byte {
	d := sha1.Sum(in) // #nosec G401
	return d[:]
}

func (h sha1Func) SumBatch(in [][]byte) [][]byte { return sumBatch(h, in) }

type sha256Func struct{}

func (sha256Func) Name() string { return NameSHA256 }
func (sha256Func) Size() int    { return sha256simd.Size }

func (sha256Func) Sum(in []byte) []byte {
	d := sha256simd.Sum256(in)
	return d[:]
}

// SumBatch reuses a single SIMD-backed hasher across lanes.
func (sha256Func) SumBatch(in [][]byte) [][]byte {
	out := make([][]byte, len(in))
	hasher := sha256simd.New()
	for i := range in {
		hasher.Reset()
		hasher.Write(in[i])
		out[i] = hasher.Sum(nil)
	}
	return out
}

type sha3Func struct{}

func (sha3Func) Name() string { return NameSHA3_256 }
func (sha3Func) Size() int    { return 32 }

func (sha3Func) Sum(in []byte) []byte {
	d := sha3.Sum256(in)
	return d[:]
}

func (h sha3Func) SumBatch(in [][]byte) [][]byte { return sumBatch(h, in) }

type blake2bFunc struct{}

func (blake2bFunc) Name() string { return NameBLAKE2b256 }
func (blake2bFunc) Size() int    { return blake2b.Size256 }

func (blake2bFunc) Sum(in []byte) []byte {
	d := blake2b.Sum256(in)
	return d[:]
}

func (h blake2bFunc) SumBatch(in [][]byte) [][]byte { return sumBatch(h, in) }

type blake3Func struct{}

func (blake3Func) Name() string { return NameBLAKE3 }
func (blake3Func) Size() int    { return 32 }

func (blake3Func) Sum(in []byte) []byte {
	d := blake3.Sum256(in)
	return d[:]
}

func (h blake3Func) SumBatch(in [][]byte) [][]byte { return sumBatch(h, in) }
