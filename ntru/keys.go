package ntru

import (
	"fmt"

	"github.com/tuneinsight/ntru/ring"
	"github.com/tuneinsight/ntru/utils"
)

const (
	tagTernary     = 0
	tagProductForm = 1
)

// PublicKey is a type for NTRUEncrypt public keys: h = 3*g*f^-1 mod q.
type PublicKey struct {
	params Parameters
	H      ring.Poly
}

// NewPublicKey returns a new zero PublicKey for the given parameters.
func NewPublicKey(params Parameters) *PublicKey {
	return &PublicKey{params: params, H: params.Ring().NewPoly()}
}

// Parameters returns the parameters of the key.
func (pk *PublicKey) Parameters() Parameters {
	return pk.params
}

// CopyNew creates a deep copy of the receiver and returns it.
func (pk *PublicKey) CopyNew() *PublicKey {
	return &PublicKey{params: pk.params, H: pk.H.CopyNew()}
}

// Equal checks two public keys for equality.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.params.Equal(other.params) && pk.params.Ring().Equal(pk.H, other.H)
}

// BinarySize returns the serialized size of the key in bytes.
func (pk *PublicKey) BinarySize() int {
	return pk.params.PublicKeyLen()
}

// MarshalBinary encodes the key as [OID (3 bytes)][h packed on log2(q) bits per coefficient].
func (pk *PublicKey) MarshalBinary() (data []byte, err error) {
	oid := pk.params.OID()
	data = make([]byte, pk.BinarySize())
	copy(data, oid[:])
	if _, err = pk.params.Ring().Encode(pk.H, data[len(oid):]); err != nil {
		return nil, fmt.Errorf("cannot MarshalBinary: %w", err)
	}
	return
}

// UnmarshalBinary decodes a key encoded by MarshalBinary on the receiver, which must
// have been allocated with NewPublicKey for the parameters of the key.
func (pk *PublicKey) UnmarshalBinary(data []byte) (err error) {

	if len(data) != pk.BinarySize() {
		return fmt.Errorf("cannot UnmarshalBinary: %w: public key of %d bytes, expected %d", ErrMalformedKey, len(data), pk.BinarySize())
	}

	if oid := pk.params.OID(); [3]byte(data[:3]) != oid {
		return fmt.Errorf("cannot UnmarshalBinary: %w: OID %v does not match parameters %v", ErrMalformedKey, data[:3], pk.params)
	}

	if _, err = pk.params.Ring().Decode(data[3:], pk.H); err != nil {
		return fmt.Errorf("cannot UnmarshalBinary: %w: %v", ErrMalformedKey, err)
	}

	return
}

// UnmarshalPublicKey decodes a public key of one of the standard parameter sets,
// identified by its OID.
func UnmarshalPublicKey(data []byte) (*PublicKey, error) {

	if len(data) < 3 {
		return nil, fmt.Errorf("cannot UnmarshalPublicKey: %w: %d bytes", ErrMalformedKey, len(data))
	}

	params, err := ParametersByOID([3]byte(data[:3]))
	if err != nil {
		return nil, fmt.Errorf("cannot UnmarshalPublicKey: %w", err)
	}

	pk := NewPublicKey(params)
	if err = pk.UnmarshalBinary(data); err != nil {
		return nil, err
	}

	return pk, nil
}

// PrivateKey is a type for NTRUEncrypt private keys. F is the private polynomial
// and Fp its inverse modulo 3, which is the constant 1 for lifted parameter sets.
type PrivateKey struct {
	params Parameters
	F      ring.SecretPoly
	Fp     ring.Poly
}

// NewPrivateKey returns a new empty PrivateKey for the given parameters, to be
// filled by UnmarshalBinary.
func NewPrivateKey(params Parameters) *PrivateKey {
	return &PrivateKey{params: params}
}

// Parameters returns the parameters of the key.
func (sk *PrivateKey) Parameters() Parameters {
	return sk.params
}

// CopyNew creates a deep copy of the receiver and returns it.
func (sk *PrivateKey) CopyNew() *PrivateKey {
	return &PrivateKey{
		params: sk.params,
		F:      ring.SecretPoly{T: sk.F.T.CopyNew(), Lifted: sk.F.Lifted},
		Fp:     sk.Fp.CopyNew(),
	}
}

// Equal checks two private keys for equality.
func (sk *PrivateKey) Equal(other *PrivateKey) bool {

	if !sk.params.Equal(other.params) || sk.F.Lifted != other.F.Lifted {
		return false
	}

	switch t := sk.F.T.(type) {
	case ring.Ternary:
		o, ok := other.F.T.(ring.Ternary)
		return ok && t.Equal(o)
	case ring.ProductForm:
		o, ok := other.F.T.(ring.ProductForm)
		return ok && t.Equal(o)
	}

	return false
}

// BinarySize returns the serialized size of the key in bytes.
func (sk *PrivateKey) BinarySize() int {
	return sk.params.PrivateKeyLen()
}

// MarshalBinary encodes the key as [OID (3 bytes)][tag (1 byte): 0 ternary, 1 product form]
// followed, per ternary component, by the number of ones and minus ones (2 bytes each,
// big endian) and their indices packed on ceil(log2 N) bits.
func (sk *PrivateKey) MarshalBinary() (data []byte, err error) {

	oid := sk.params.OID()
	buf := utils.NewBuffer(make([]byte, 0, sk.BinarySize()))
	buf.WriteUint8Slice(oid[:])

	bits := utils.BitLen(uint64(sk.params.N()))

	switch t := sk.F.T.(type) {
	case ring.Ternary:
		buf.WriteUint8(tagTernary)
		writeTernary(buf, t, bits)
	case ring.ProductForm:
		buf.WriteUint8(tagProductForm)
		writeTernary(buf, t.F1, bits)
		writeTernary(buf, t.F2, bits)
		writeTernary(buf, t.F3, bits)
	default:
		return nil, fmt.Errorf("cannot MarshalBinary: %w: unknown private polynomial %T", ErrMalformedKey, sk.F.T)
	}

	return buf.Bytes(), nil
}

func writeTernary(buf *utils.Buffer, t ring.Ternary, bits int) {
	buf.WriteUint16(uint16(len(t.Ones)))
	buf.WriteUint16(uint16(len(t.NegOnes)))
	idx := make([]int, 0, t.Weight())
	idx = append(idx, t.Ones...)
	idx = append(idx, t.NegOnes...)
	buf.WriteUint8Slice(ring.PackIndices(idx, bits))
}

// readTernary reads a ternary component that must have exactly w[0] ones and w[1] minus ones.
func readTernary(buf *utils.Buffer, N, bits int, w [2]int) (t ring.Ternary, err error) {

	var ones, negOnes uint16

	if ones, err = buf.ReadUint16(); err != nil {
		return
	}

	if negOnes, err = buf.ReadUint16(); err != nil {
		return
	}

	if int(ones) != w[0] || int(negOnes) != w[1] {
		return t, fmt.Errorf("weights (%d, %d) do not match the expected (%d, %d)", ones, negOnes, w[0], w[1])
	}

	count := w[0] + w[1]

	var data []byte
	if data, err = buf.Next(ring.PackedLen(count, bits)); err != nil {
		return
	}

	var idx []int
	if idx, err = ring.UnpackIndices(data, count, bits); err != nil {
		return
	}

	t = ring.Ternary{N: N, Ones: idx[:ones:ones], NegOnes: idx[ones:]}

	return t, t.Validate()
}

// UnmarshalBinary decodes a key encoded by MarshalBinary on the receiver. The OID must
// match the parameters of the receiver. The inverse modulo 3 is recomputed for
// non-lifted parameter sets.
func (sk *PrivateKey) UnmarshalBinary(data []byte) (err error) {

	params := sk.params

	if len(data) != params.PrivateKeyLen() {
		return fmt.Errorf("cannot UnmarshalBinary: %w: %d bytes, expected %d", ErrMalformedKey, len(data), params.PrivateKeyLen())
	}

	buf := utils.NewBuffer(data)

	var oid []byte
	if oid, err = buf.Next(3); err != nil || [3]byte(oid) != params.OID() {
		return fmt.Errorf("cannot UnmarshalBinary: %w: OID does not match parameters %v", ErrMalformedKey, params)
	}

	var tag byte
	if tag, err = buf.ReadUint8(); err != nil {
		return fmt.Errorf("cannot UnmarshalBinary: %w: %v", ErrMalformedKey, err)
	}

	N, bits := params.N(), utils.BitLen(uint64(params.N()))
	w := params.privateWeights()

	var T ring.PrivatePoly

	switch {
	case tag == tagTernary && !params.ProductForm():
		var t ring.Ternary
		if t, err = readTernary(buf, N, bits, w[0]); err != nil {
			return fmt.Errorf("cannot UnmarshalBinary: %w: %v", ErrMalformedKey, err)
		}
		T = t
	case tag == tagProductForm && params.ProductForm():
		var f ring.ProductForm
		for i, t := range []*ring.Ternary{&f.F1, &f.F2, &f.F3} {
			if *t, err = readTernary(buf, N, bits, w[i]); err != nil {
				return fmt.Errorf("cannot UnmarshalBinary: %w: %v", ErrMalformedKey, err)
			}
		}
		T = f
	default:
		return fmt.Errorf("cannot UnmarshalBinary: %w: polynomial tag %d does not match parameters %v", ErrMalformedKey, tag, params)
	}

	if buf.Len() != 0 {
		return fmt.Errorf("cannot UnmarshalBinary: %w: %d trailing bytes", ErrMalformedKey, buf.Len())
	}

	sk.F = ring.SecretPoly{T: T, Lifted: params.Lifted()}

	if sk.Fp, err = params.Ring().InvertMod3(sk.F); err != nil {
		return fmt.Errorf("cannot UnmarshalBinary: %w: %v", ErrMalformedKey, err)
	}

	return
}

// ParametersFromPrivateKey returns the standard parameter set of an encoded private key.
func ParametersFromPrivateKey(data []byte) (Parameters, error) {
	if len(data) < 3 {
		return Parameters{}, fmt.Errorf("cannot ParametersFromPrivateKey: %w: %d bytes", ErrMalformedKey, len(data))
	}
	return ParametersByOID([3]byte(data[:3]))
}

// UnmarshalPrivateKey decodes a private key of one of the standard parameter sets.
func UnmarshalPrivateKey(data []byte) (*PrivateKey, error) {

	params, err := ParametersFromPrivateKey(data)
	if err != nil {
		return nil, err
	}

	sk := &PrivateKey{params: params}
	if err = sk.UnmarshalBinary(data); err != nil {
		return nil, err
	}

	return sk, nil
}

// KeyPair is a private key and its public key.
type KeyPair struct {
	Private *PrivateKey
	Public  *PublicKey
}
