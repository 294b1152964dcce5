package random

import (
	"crypto/hmac"

	sha256simd "github.com/minio/sha256-simd"
)

// HMACDRBG is a deterministic provider implementing the HMAC_DRBG of
// SP 800-90Ar1 (section 10.1.2) over SHA-256. The seed is used as the
// entropy input; no nonce or personalization string is mixed in.
var HMACDRBG Generator = hmacDRBGGenerator{}

type hmacDRBGGenerator struct{}

func (hmacDRBGGenerator) Name() string        { return "hmac-drbg" }
func (hmacDRBGGenerator) Deterministic() bool { return true }

func (hmacDRBGGenerator) New(seed []byte) (State, error) {
	var err error
	if seed == nil {
		if seed, err = systemSeed(48); err != nil {
			return nil, err
		}
	}
	drbg := new(hmacDRBG)
	drbg.init(seed)
	return drbg, nil
}

type hmacDRBG struct {
	k, v [32]byte
}

func (drbg *hmacDRBG) init(entropy []byte) {
	for i := range drbg.k {
		drbg.k[i] = 0
	}
	for i := range drbg.v {
		drbg.v[i] = 1
	}
	drbg.update(entropy)
}

func (drbg *hmacDRBG) update(data []byte) {
	buf := make([]byte, 0, len(drbg.v)+1+len(data))
	buf = append(buf, drbg.v[:]...)
	buf = append(buf, 0)
	buf = append(buf, data...)

	mac := hmac.New(sha256simd.New, drbg.k[:])
	mac.Write(buf)
	mac.Sum(drbg.k[:0])

	mac = hmac.New(sha256simd.New, drbg.k[:])
	mac.Write(drbg.v[:])
	mac.Sum(drbg.v[:0])

	if len(data) > 0 {
		copy(buf, drbg.v[:])
		buf[len(drbg.v)] = 1

		mac = hmac.New(sha256simd.New, drbg.k[:])
		mac.Write(buf)
		mac.Sum(drbg.k[:0])

		mac = hmac.New(sha256simd.New, drbg.k[:])
		mac.Write(drbg.v[:])
		mac.Sum(drbg.v[:0])
	}
}

// Read runs one Generate call of the DRBG without additional input.
func (drbg *hmacDRBG) Read(out []byte) (int, error) {
	done := 0
	for done < len(out) {
		mac := hmac.New(sha256simd.New, drbg.k[:])
		mac.Write(drbg.v[:])
		mac.Sum(drbg.v[:0])

		done += copy(out[done:], drbg.v[:])
	}

	drbg.update(nil)

	return done, nil
}

func (drbg *hmacDRBG) Close() error {
	drbg.k = [32]byte{}
	drbg.v = [32]byte{}
	return nil
}
