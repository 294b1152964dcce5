package ntru

import (
	"crypto/subtle"
	"fmt"

	"github.com/tuneinsight/ntru/ring"
)

// Decryptor decrypts ciphertexts with a key pair.
type Decryptor struct {
	params Parameters
	kp     *KeyPair
	htrunc []byte
}

// NewDecryptor creates a new Decryptor for the given key pair.
func NewDecryptor(kp *KeyPair) (*Decryptor, error) {

	if !kp.Private.params.Equal(kp.Public.params) {
		return nil, fmt.Errorf("cannot NewDecryptor: %w: private key of %v, public key of %v", ErrInvalidParameter, kp.Private.params, kp.Public.params)
	}

	enc, err := NewEncryptor(kp.Public)
	if err != nil {
		return nil, fmt.Errorf("cannot NewDecryptor: %w", err)
	}

	return &Decryptor{params: kp.Public.params, kp: kp, htrunc: enc.htrunc}, nil
}

// Decrypt returns the message of ct. A ciphertext of the wrong length returns
// ErrMalformedCiphertext. Otherwise, every integrity check is evaluated and any
// failure returns ErrDecryptionInvalid.
func (dec *Decryptor) Decrypt(ct []byte) (msg []byte, err error) {

	params := dec.params
	r := params.Ring()
	sk := dec.kp.Private

	if len(ct) != params.CiphertextLen() {
		return nil, fmt.Errorf("cannot Decrypt: %w: %d bytes, expected %d", ErrMalformedCiphertext, len(ct), params.CiphertextLen())
	}

	e := r.NewPoly()
	if _, err = r.Decode(ct, e); err != nil {
		return nil, fmt.Errorf("cannot Decrypt: %w: %v", ErrMalformedCiphertext, err)
	}

	// ci = f*e mod q mod 3, times fp for non-lifted keys.
	ci := r.NewPoly()
	if err = r.MulSecret(e, sk.F, ci); err != nil {
		return nil, fmt.Errorf("cannot Decrypt: %w", err)
	}
	r.CenterQ(ci, ci)
	r.Center(ci, ring.P, ci)

	if !sk.F.Lifted {
		if err = r.MulPolyLazy(sk.Fp, ci, ci); err != nil {
			return nil, fmt.Errorf("cannot Decrypt: %w", err)
		}
		r.Center(ci, ring.P, ci)
	}

	valid := checkWeight(ci, params.Dm0())

	// cR = e - ci = r*h mod q
	cR := r.NewPoly()
	r.Sub(e, ci, cR)
	r.Reduce(cR, cR)

	mask := r.NewPoly()
	genMask(params, ring.PackMod4(cR), mask)

	cmtrin := r.NewPoly()
	r.Sub(ci, mask, cmtrin)
	r.Center(cmtrin, ring.P, cmtrin)

	cM := make([]byte, params.BufferLen())
	valid &= tritsToBits(cmtrin, cM)

	blen := params.Db() / 8
	maxLen := params.MaxMsgLenBytes()

	cb := cM[:blen]
	cl := int(cM[blen])
	lenOK := subtle.ConstantTimeLessOrEq(cl, maxLen)
	valid &= lenOK
	cl = subtle.ConstantTimeSelect(lenOK, cl, maxLen)

	var pad byte
	for i, x := range cM[blen+1:] {
		pad |= byte(-subtle.ConstantTimeLessOrEq(cl, i)) & x
	}
	valid &= subtle.ConstantTimeByteEq(pad, 0)

	cm := cM[blen+1 : blen+1+cl]

	var rPoly ring.PrivatePoly
	if rPoly, err = genBlindingPoly(params, blindingSeed(params, cm, cb, dec.htrunc)); err != nil {
		return nil, fmt.Errorf("cannot Decrypt: %w", err)
	}

	R := r.NewPoly()
	if err = r.MulPrivate(dec.kp.Public.H, rPoly, R); err != nil {
		return nil, fmt.Errorf("cannot Decrypt: %w", err)
	}

	encR := make([]byte, params.CiphertextLen())
	encCR := make([]byte, params.CiphertextLen())
	if _, err = r.Encode(R, encR); err != nil {
		return nil, fmt.Errorf("cannot Decrypt: %w", err)
	}
	if _, err = r.Encode(cR, encCR); err != nil {
		return nil, fmt.Errorf("cannot Decrypt: %w", err)
	}
	valid &= subtle.ConstantTimeCompare(encR, encCR)

	if valid != 1 {
		return nil, ErrDecryptionInvalid
	}

	msg = make([]byte, cl)
	copy(msg, cm)

	return msg, nil
}
