// Package ntru implements the NTRUEncrypt public-key encryption scheme with SVES padding
// over the ring Z_q[x]/(x^N - 1): parameter sets, key generation, encryption, decryption
// and the binary encoding of keys.
package ntru

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/tuneinsight/ntru/digest"
	"github.com/tuneinsight/ntru/ring"
	"github.com/tuneinsight/ntru/utils"
)

// MaxMsgLen is the largest message capacity of a parameter set: the message length is
// serialized on one byte.
const MaxMsgLen = 255

// ParametersLiteral is a literal representation of NTRUEncrypt parameters. It has public fields
// and is used to express unchecked user-defined parameters literally into Go programs or
// configuration files. The NewParametersFromLiteral function is used to generate the actual
// checked parameters from the literal representation.
//
// Users must set N, Q, the weights of the private polynomial (Df, or Df1, Df2 and Df3 when
// ProductForm is set), Dm0, Db, C, the OID and the hash function.
// Optionally, users may specify
// - Dg, the number of ones of g (defaults to N/3),
// - PkLen, the number of bits of the public key hashed into the blinding seed (defaults to Db),
// - MinCallsR and MinCallsMask, the number of hash blocks computed upfront by the index and
// mask generation functions (default to 1),
// - Lifted, which selects private polynomials of the form f = 1 + 3T.
type ParametersLiteral struct {
	Name         string  `json:",omitempty" yaml:"name,omitempty"`
	N            int     `yaml:"n"`
	Q            uint64  `yaml:"q"`
	ProductForm  bool    `json:",omitempty" yaml:"product_form,omitempty"`
	Df           int     `json:",omitempty" yaml:"df,omitempty"`
	Df1          int     `json:",omitempty" yaml:"df1,omitempty"`
	Df2          int     `json:",omitempty" yaml:"df2,omitempty"`
	Df3          int     `json:",omitempty" yaml:"df3,omitempty"`
	Dg           int     `json:",omitempty" yaml:"dg,omitempty"`
	Dm0          int     `yaml:"dm0"`
	Db           int     `yaml:"db"`
	C            int     `yaml:"c"`
	MinCallsR    int     `json:",omitempty" yaml:"min_calls_r,omitempty"`
	MinCallsMask int     `json:",omitempty" yaml:"min_calls_mask,omitempty"`
	OID          [3]byte `yaml:"oid,flow"`
	Hash         string  `yaml:"hash"`
	PkLen        int     `json:",omitempty" yaml:"pklen,omitempty"`
	Lifted       bool    `yaml:"lifted"`
}

// Parameters represents a parameter set for NTRUEncrypt. Its fields are private and
// immutable. See ParametersLiteral for user-specified parameters.
type Parameters struct {
	lit  ParametersLiteral
	ring *ring.Ring
	hash digest.Func
}

// NewParametersFromLiteral instantiates a checked set of parameters from a ParametersLiteral
// representation. Unset optional fields are replaced by their default value.
func NewParametersFromLiteral(lit ParametersLiteral) (params Parameters, err error) {

	if lit.Dg == 0 {
		lit.Dg = lit.N / 3
	}

	if lit.PkLen == 0 {
		lit.PkLen = lit.Db
	}

	if lit.MinCallsR == 0 {
		lit.MinCallsR = 1
	}

	if lit.MinCallsMask == 0 {
		lit.MinCallsMask = 1
	}

	if params.ring, err = ring.NewRing(lit.N, lit.Q); err != nil {
		return Parameters{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	if params.hash, err = digest.ByName(lit.Hash); err != nil {
		return Parameters{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	params.lit = lit

	if err = params.validate(); err != nil {
		return Parameters{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	return
}

func (p Parameters) validate() error {

	lit := p.lit
	N := lit.N

	if lit.ProductForm {
		for _, d := range []int{lit.Df1, lit.Df2, lit.Df3} {
			if d < 1 || 2*d > N {
				return fmt.Errorf("product-form weights (%d, %d, %d) must be in [1, N/2]", lit.Df1, lit.Df2, lit.Df3)
			}
		}
	} else if lit.Df < 1 || 2*lit.Df > N {
		return fmt.Errorf("Df=%d must be in [1, N/2]", lit.Df)
	}

	if lit.Dg < 1 || 2*lit.Dg-1 > N {
		return fmt.Errorf("Dg=%d must be in [1, (N+1)/2]", lit.Dg)
	}

	if lit.Dm0 < 0 || 3*lit.Dm0 > N {
		return fmt.Errorf("Dm0=%d must be in [0, N/3]", lit.Dm0)
	}

	if lit.Db < 8 || lit.Db%8 != 0 {
		return fmt.Errorf("Db=%d must be a positive multiple of 8", lit.Db)
	}

	if lit.C < 1 || lit.C > 31 || 1<<lit.C < N {
		return fmt.Errorf("C=%d must be in [1, 31] with 2^C >= N", lit.C)
	}

	if lit.MinCallsR < 0 || lit.MinCallsMask < 0 {
		return fmt.Errorf("MinCallsR=%d and MinCallsMask=%d must be non-negative", lit.MinCallsR, lit.MinCallsMask)
	}

	if lit.PkLen < 8 || lit.PkLen/8 > p.ring.EncodedLen() {
		return fmt.Errorf("PkLen=%d must be in [8, %d]", lit.PkLen, 8*p.ring.EncodedLen())
	}

	if m := p.MaxMsgLenBytes(); m < 1 || m > MaxMsgLen {
		return fmt.Errorf("message capacity %d must be in [1, %d]", m, MaxMsgLen)
	}

	return nil
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters, with all defaults filled in.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return p.lit
}

// Name returns the name of the parameter set, empty for unnamed sets.
func (p Parameters) Name() string {
	return p.lit.Name
}

// String returns the name of the parameter set, or a description of its dimensions.
func (p Parameters) String() string {
	if p.lit.Name != "" {
		return p.lit.Name
	}
	return fmt.Sprintf("N=%d/Q=%d/OID=%v", p.lit.N, p.lit.Q, p.lit.OID)
}

// N returns the ring degree.
func (p Parameters) N() int {
	return p.lit.N
}

// Q returns the large modulus.
func (p Parameters) Q() uint64 {
	return p.lit.Q
}

// Ring returns the ring Z_q[x]/(x^N - 1) of the parameter set.
func (p Parameters) Ring() *ring.Ring {
	return p.ring
}

// ProductForm returns true if private and blinding polynomials are in product form.
func (p Parameters) ProductForm() bool {
	return p.lit.ProductForm
}

// Df returns the number of ones (and minus ones) of a ternary private polynomial.
func (p Parameters) Df() int {
	return p.lit.Df
}

// Df1 returns the weight of the first factor of a product-form polynomial.
func (p Parameters) Df1() int {
	return p.lit.Df1
}

// Df2 returns the weight of the second factor of a product-form polynomial.
func (p Parameters) Df2() int {
	return p.lit.Df2
}

// Df3 returns the weight of the additive component of a product-form polynomial.
func (p Parameters) Df3() int {
	return p.lit.Df3
}

// Dg returns the number of ones of g. g has Dg-1 minus ones.
func (p Parameters) Dg() int {
	return p.lit.Dg
}

// Dm0 returns the minimum number of each of -1, 0 and 1 in a masked message representative.
func (p Parameters) Dm0() int {
	return p.lit.Dm0
}

// Db returns the number of random bits prepended to a message.
func (p Parameters) Db() int {
	return p.lit.Db
}

// C returns the number of bits read by the index generation function per candidate index.
func (p Parameters) C() int {
	return p.lit.C
}

// MinCallsR returns the number of hash blocks computed upfront by the index generation function.
func (p Parameters) MinCallsR() int {
	return p.lit.MinCallsR
}

// MinCallsMask returns the number of hash blocks computed upfront by the mask generation function.
func (p Parameters) MinCallsMask() int {
	return p.lit.MinCallsMask
}

// OID returns the three-byte identifier of the parameter set.
func (p Parameters) OID() [3]byte {
	return p.lit.OID
}

// Hash returns the hash function of the parameter set.
func (p Parameters) Hash() digest.Func {
	return p.hash
}

// PkLen returns the number of bits of the encoded public key included in the blinding seed.
// The first PkLen/8 bytes are used.
func (p Parameters) PkLen() int {
	return p.lit.PkLen
}

// Lifted returns true if private polynomials are of the form f = 1 + 3T.
func (p Parameters) Lifted() bool {
	return p.lit.Lifted
}

// BufferLen returns the number of bytes of a padded message b || len || msg || 0...,
// that is the number of bytes that fit in the trits of floor(N/2) 3-bit groups.
func (p Parameters) BufferLen() int {
	return p.lit.N / 2 * 3 / 8
}

// MaxMsgLenBytes returns the largest message length accepted by the encryption.
func (p Parameters) MaxMsgLenBytes() int {
	return p.BufferLen() - p.lit.Db/8 - 1
}

// CiphertextLen returns the number of bytes of a ciphertext.
func (p Parameters) CiphertextLen() int {
	return p.ring.EncodedLen()
}

// PublicKeyLen returns the number of bytes of an encoded public key.
func (p Parameters) PublicKeyLen() int {
	return len(p.lit.OID) + p.ring.EncodedLen()
}

// PrivateKeyLen returns the number of bytes of an encoded private key.
func (p Parameters) PrivateKeyLen() int {
	bits := utils.BitLen(uint64(p.lit.N))
	n := len(p.lit.OID) + 1
	for _, w := range p.privateWeights() {
		n += 4 + ring.PackedLen(w[0]+w[1], bits)
	}
	return n
}

// privateWeights returns the number of ones and minus ones of each ternary component
// of a private polynomial: one component for ternary sets, three for product-form sets.
func (p Parameters) privateWeights() [][2]int {
	off := p.negOnesOffset()
	if p.lit.ProductForm {
		return [][2]int{{p.lit.Df1, p.lit.Df1}, {p.lit.Df2, p.lit.Df2}, {p.lit.Df3, p.lit.Df3 - off}}
	}
	return [][2]int{{p.lit.Df, p.lit.Df - off}}
}

// negOnesOffset is the number of minus ones removed from the additive component of
// a non-lifted private polynomial, so that f(1) = 1 and f can be inverted modulo 2 and 3.
func (p Parameters) negOnesOffset() int {
	if p.lit.Lifted {
		return 0
	}
	return 1
}

// Equal compares two sets of parameters for equality.
func (p Parameters) Equal(other Parameters) bool {
	return cmp.Equal(p.lit, other.lit)
}

// MarshalBinary returns a []byte representation of the parameter set.
func (p Parameters) MarshalBinary() ([]byte, error) {
	return p.MarshalJSON()
}

// UnmarshalBinary decodes a []byte into a parameter set and stores the result in the receiver.
func (p *Parameters) UnmarshalBinary(data []byte) (err error) {
	return p.UnmarshalJSON(data)
}

// MarshalJSON returns a JSON representation of this parameter set. See `Marshal` from the `encoding/json` package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.lit)
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameters. See `Unmarshal` from the `encoding/json` package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var lit ParametersLiteral
	if err = json.Unmarshal(data, &lit); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(lit)
	return
}

// MarshalYAML implements yaml.Marshaler.
func (p Parameters) MarshalYAML() (interface{}, error) {
	return p.lit, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Parameters) UnmarshalYAML(value *yaml.Node) (err error) {
	var lit ParametersLiteral
	if err = value.Decode(&lit); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(lit)
	return
}

// LoadParametersLiteral reads a YAML parameter literal from r. Unknown keys are rejected.
// A literal that only carries the name of a standard parameter set is completed from
// the standard table.
func LoadParametersLiteral(r io.Reader) (lit ParametersLiteral, err error) {

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err = dec.Decode(&lit); err != nil {
		return ParametersLiteral{}, fmt.Errorf("cannot LoadParametersLiteral: %w", err)
	}

	if lit.N == 0 && lit.Name != "" {
		std, ok := standardParameters[lit.Name]
		if !ok {
			return ParametersLiteral{}, fmt.Errorf("cannot LoadParametersLiteral: %w: unknown parameter set %q", ErrInvalidParameter, lit.Name)
		}
		return std, nil
	}

	return
}
