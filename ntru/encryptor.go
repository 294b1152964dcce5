package ntru

import (
	"fmt"
	"io"

	"github.com/tuneinsight/ntru/ring"
)

// Encryptor encrypts messages under a public key with SVES padding.
type Encryptor struct {
	params Parameters
	pk     *PublicKey
	htrunc []byte
}

// NewEncryptor creates a new Encryptor for the given public key.
func NewEncryptor(pk *PublicKey) (*Encryptor, error) {
	data, err := pk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}
	params := pk.params
	return &Encryptor{
		params: params,
		pk:     pk,
		htrunc: data[len(params.OID()) : len(params.OID())+params.PkLen()/8],
	}, nil
}

// Encrypt encrypts msg, reading the random prefix of the padding from rnd, typically
// a *random.Context. The ciphertext always has params.CiphertextLen() bytes.
//
// The padded message M = b || len(msg) || msg || 0... is converted to trits and masked
// with MGF(r*h mod 4), where the blinding polynomial r is derived from
// OID || msg || b || htrunc. A new b is drawn whenever the masked representative has
// fewer than Dm0 coefficients equal to one of -1, 0 and 1.
func (enc *Encryptor) Encrypt(msg []byte, rnd io.Reader) (ct []byte, err error) {

	params := enc.params
	r := params.Ring()

	if len(msg) > params.MaxMsgLenBytes() {
		return nil, fmt.Errorf("cannot Encrypt: %w: %d > %d bytes", ErrInputTooLarge, len(msg), params.MaxMsgLenBytes())
	}

	blen := params.Db() / 8

	M := make([]byte, params.BufferLen())
	M[blen] = byte(len(msg))
	copy(M[blen+1:], msg)
	b := M[:blen]

	mtrin := r.NewPoly()
	R := r.NewPoly()
	mask := r.NewPoly()

	for {
		if _, err = io.ReadFull(rnd, b); err != nil {
			return nil, fmt.Errorf("cannot Encrypt: %w", randomnessError(err))
		}

		bitsToTrits(M, mtrin)

		var rPoly ring.PrivatePoly
		if rPoly, err = genBlindingPoly(params, blindingSeed(params, msg, b, enc.htrunc)); err != nil {
			return nil, fmt.Errorf("cannot Encrypt: %w", err)
		}

		if err = r.MulPrivate(enc.pk.H, rPoly, R); err != nil {
			return nil, fmt.Errorf("cannot Encrypt: %w", err)
		}

		genMask(params, ring.PackMod4(R), mask)

		r.Add(mtrin, mask, mtrin)
		r.Center(mtrin, ring.P, mtrin)

		if checkWeight(mtrin, params.Dm0()) == 1 {
			break
		}
	}

	r.Add(R, mtrin, R)

	ct = make([]byte, params.CiphertextLen())
	if _, err = r.Encode(R, ct); err != nil {
		return nil, fmt.Errorf("cannot Encrypt: %w", err)
	}

	return
}
