package ntru

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ntru/digest"
	"github.com/tuneinsight/ntru/random"
	"github.com/tuneinsight/ntru/ring"
	"github.com/tuneinsight/ntru/utils"
)

var flagLongTest = flag.Bool("long", false, "run the tests on all the standard parameter sets.")

var (
	// TestTernary is a small ternary parameter set with lifted keys.
	TestTernary = ParametersLiteral{
		Name:   "TestTernary",
		N:      107,
		Q:      2048,
		Df:     15,
		Dm0:    20,
		Db:     64,
		C:      8,
		OID:    [3]byte{0xff, 0, 1},
		Hash:   digest.NameSHA256,
		Lifted: true,
	}

	// TestTernaryNonLifted is a small ternary parameter set with f = T.
	TestTernaryNonLifted = ParametersLiteral{
		Name: "TestTernaryNonLifted",
		N:    107,
		Q:    2048,
		Df:   15,
		Dm0:  20,
		Db:   64,
		C:    8,
		OID:  [3]byte{0xff, 0, 2},
		Hash: digest.NameBLAKE3,
	}

	// TestProductForm is a small product-form parameter set.
	TestProductForm = ParametersLiteral{
		Name:         "TestProductForm",
		N:            107,
		Q:            2048,
		ProductForm:  true,
		Df1:          4,
		Df2:          4,
		Df3:          3,
		Dm0:          20,
		Db:           64,
		C:            8,
		MinCallsR:    3,
		MinCallsMask: 2,
		OID:          [3]byte{0xff, 0, 3},
		Hash:         digest.NameSHA3_256,
	}

	testParamsLiteral = []ParametersLiteral{TestTernary, TestTernaryNonLifted, TestProductForm, EES401EP1, EES401EP2}
)

func testString(opname string, params Parameters) string {
	return fmt.Sprintf("%s/%s/N=%d/lifted=%t/product=%t", opname, params, params.N(), params.Lifted(), params.ProductForm())
}

func newTestPRNG(t *testing.T, seed string) *random.Context {
	prng, err := random.NewDeterministicContext(random.ChaCha20, []byte(seed))
	require.NoError(t, err)
	t.Cleanup(func() { prng.Close() })
	return prng
}

// fitMessage truncates msg to the message capacity of params.
func fitMessage(params Parameters, msg string) []byte {
	return []byte(msg)[:utils.MinInt(len(msg), params.MaxMsgLenBytes())]
}

type testContext struct {
	params Parameters
	kgen   *KeyGenerator
	kp     *KeyPair
	enc    *Encryptor
	dec    *Decryptor
}

func newTestContext(t *testing.T, lit ParametersLiteral) *testContext {

	params, err := NewParametersFromLiteral(lit)
	require.NoError(t, err)

	kgen := NewKeyGenerator(params)
	kp, err := kgen.GenKeyPair(newTestPRNG(t, "keys-"+params.String()))
	require.NoError(t, err)

	enc, err := NewEncryptor(kp.Public)
	require.NoError(t, err)

	dec, err := NewDecryptor(kp)
	require.NoError(t, err)

	return &testContext{params: params, kgen: kgen, kp: kp, enc: enc, dec: dec}
}

func TestNTRU(t *testing.T) {

	lits := testParamsLiteral
	if *flagLongTest {
		lits = append(lits[:3:3], standardLiterals()...)
	}

	for _, lit := range lits {

		tc := newTestContext(t, lit)

		for _, testSet := range []func(tc *testContext, t *testing.T){
			testKeyConsistency,
			testEncryptDecrypt,
			testCiphertextTampering,
			testMalformedInputs,
			testKeyMarshalling,
			testGenKeyPairMulti,
			testGenPublicKey,
			testDeterministic,
		} {
			testSet(tc, t)
		}
	}
}

func standardLiterals() (lits []ParametersLiteral) {
	for _, name := range StandardParameterNames() {
		lits = append(lits, standardParameters[name])
	}
	return
}

func testKeyConsistency(tc *testContext, t *testing.T) {
	t.Run(testString("KeyConsistency", tc.params), func(t *testing.T) {

		params := tc.params
		r := params.Ring()
		N := params.N()
		sk, pk := tc.kp.Private, tc.kp.Public

		// f * h = 3g, with g ternary of weight 2*Dg-1.
		fh := r.NewPoly()
		require.NoError(t, r.MulSecret(pk.H, sk.F, fh))
		r.CenterQ(fh, fh)
		g := r.NewPoly()
		for i, c := range fh.Coeffs {
			require.Zero(t, c%3)
			g.Coeffs[i] = c / 3
		}
		require.Equal(t, params.Dg(), g.Count(1))
		require.Equal(t, params.Dg()-1, g.Count(-1))

		// f * fp = 1 mod 3
		ffp := r.NewPoly()
		require.NoError(t, r.MulPolyLazy(sk.F.Dense(), sk.Fp, ffp))
		r.Mod3(ffp, ffp)
		require.True(t, ffp.IsOne())

		// Replaying the sampling from the same seed reproduces the key pair.
		prng := newTestPRNG(t, "keys-"+params.String())
		sampler := ring.NewTernarySampler(ring.NewUniformIndexSource(prng, N), N)

		var fq ring.Poly
		for attempt := 0; ; attempt++ {
			require.Less(t, attempt, MaxKeyGenAttempts)
			T, err := tc.kgen.samplePrivatePoly(sampler)
			require.NoError(t, err)
			f := ring.SecretPoly{T: T, Lifted: params.Lifted()}
			if fq, err = r.InvertModQ(f); err != nil {
				continue
			}
			if _, err = r.InvertMod3(f); err != nil {
				continue
			}
			require.True(t, sk.Equal(&PrivateKey{params: params, F: f}))
			break
		}

		for attempt := 0; ; attempt++ {
			require.Less(t, attempt, MaxKeyGenAttempts)
			gt, err := sampler.ReadTernary(params.Dg(), params.Dg()-1)
			require.NoError(t, err)
			if _, err = ring.InvertMod2(gt.Dense()); err != nil {
				continue
			}
			h := r.NewPoly()
			require.NoError(t, r.MulTernary(fq, gt, h))
			r.MulScalar(h, 3, h)
			r.Reduce(h, h)
			require.True(t, r.Equal(h, pk.H))
			require.True(t, r.Equal(g, gt.Dense()))
			break
		}
	})
}

func testEncryptDecrypt(tc *testContext, t *testing.T) {
	t.Run(testString("EncryptDecrypt", tc.params), func(t *testing.T) {

		prng := newTestPRNG(t, "encrypt")
		maxLen := tc.params.MaxMsgLenBytes()

		for _, n := range []int{0, 1, maxLen / 2, maxLen - 1, maxLen} {

			msg, err := prng.Generate(n)
			require.NoError(t, err)

			ct, err := tc.enc.Encrypt(msg, prng)
			require.NoError(t, err)
			require.Len(t, ct, tc.params.CiphertextLen())

			pt, err := tc.dec.Decrypt(ct)
			require.NoError(t, err)
			require.Equal(t, msg, pt)
		}

		// Zero-filled message with system randomness.
		sys, err := random.NewContext(random.System)
		require.NoError(t, err)
		defer sys.Close()

		msg := make([]byte, maxLen)
		ct, err := tc.enc.Encrypt(msg, sys)
		require.NoError(t, err)
		pt, err := tc.dec.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, msg, pt)

		_, err = tc.enc.Encrypt(make([]byte, maxLen+1), prng)
		require.ErrorIs(t, err, ErrInputTooLarge)
	})
}

func testCiphertextTampering(tc *testContext, t *testing.T) {
	t.Run(testString("Tampering", tc.params), func(t *testing.T) {

		prng := newTestPRNG(t, "tamper")

		msg := fitMessage(tc.params, "attack at dawn")
		require.Len(t, msg, utils.MinInt(14, tc.params.MaxMsgLenBytes()))
		ct, err := tc.enc.Encrypt(msg, prng)
		require.NoError(t, err)

		trials := 200
		rejected := 0

		buf := make([]byte, 3)
		for i := 0; i < trials; i++ {

			_, err = prng.Read(buf)
			require.NoError(t, err)

			// The last byte may hold unused bits: only fully used bytes are altered.
			pos := (int(buf[0])<<8 | int(buf[1])) % (len(ct) - 1)
			flip := buf[2] | 1

			tampered := append([]byte{}, ct...)
			tampered[pos] ^= flip

			pt, err := tc.dec.Decrypt(tampered)
			if err != nil {
				require.True(t, errors.Is(err, ErrDecryptionInvalid), "unexpected error %v", err)
				require.Equal(t, ErrDecryptionInvalid.Error(), err.Error())
				rejected++
				continue
			}
			require.Equal(t, msg, pt)
		}

		require.GreaterOrEqual(t, rejected*100, 99*trials)
	})
}

func testMalformedInputs(tc *testContext, t *testing.T) {
	t.Run(testString("Malformed", tc.params), func(t *testing.T) {

		n := tc.params.CiphertextLen()
		for _, l := range []int{0, 1, n - 1, n + 1} {
			_, err := tc.dec.Decrypt(make([]byte, l))
			require.ErrorIs(t, err, ErrMalformedCiphertext)
		}

		// Well-formed but not a ciphertext.
		_, err := tc.dec.Decrypt(make([]byte, n))
		require.ErrorIs(t, err, ErrDecryptionInvalid)

		_, err = tc.kgen.GenKeyPair(failingReader{})
		require.ErrorIs(t, err, ErrRandomnessUnavailable)

		_, err = tc.enc.Encrypt([]byte{1}, failingReader{})
		require.ErrorIs(t, err, ErrRandomnessUnavailable)

		released := newTestPRNG(t, "released")
		require.NoError(t, released.Close())
		_, err = tc.enc.Encrypt([]byte{1}, released)
		require.ErrorIs(t, err, random.ErrReleased)
	})
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy source unplugged")
}

func testKeyMarshalling(tc *testContext, t *testing.T) {
	t.Run(testString("KeyMarshalling", tc.params), func(t *testing.T) {

		params := tc.params
		sk, pk := tc.kp.Private, tc.kp.Public

		pkData, err := pk.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, pkData, params.PublicKeyLen())
		oid := params.OID()
		require.Equal(t, oid[:], pkData[:3])

		pk2 := NewPublicKey(params)
		require.NoError(t, pk2.UnmarshalBinary(pkData))
		require.True(t, pk.Equal(pk2))

		skData, err := sk.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, skData, params.PrivateKeyLen())

		sk2 := NewPrivateKey(params)
		require.NoError(t, sk2.UnmarshalBinary(skData))
		require.True(t, sk.Equal(sk2))
		require.Equal(t, sk.Fp.Coeffs, sk2.Fp.Coeffs)

		// The decoded key pair decrypts.
		prng := newTestPRNG(t, "marshal")
		ct, err := tc.enc.Encrypt([]byte("hello"), prng)
		require.NoError(t, err)
		dec, err := NewDecryptor(&KeyPair{Private: sk2, Public: pk2})
		require.NoError(t, err)
		pt, err := dec.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, []byte("hello"), pt)

		// Standard parameter sets are found by OID.
		if _, ok := standardParameters[params.Name()]; ok {
			pk3, err := UnmarshalPublicKey(pkData)
			require.NoError(t, err)
			require.True(t, pk.Equal(pk3))

			p, err := ParametersFromPrivateKey(skData)
			require.NoError(t, err)
			require.True(t, p.Equal(params))

			sk3, err := UnmarshalPrivateKey(skData)
			require.NoError(t, err)
			require.True(t, sk.Equal(sk3))
		} else {
			_, err = UnmarshalPublicKey(pkData)
			require.ErrorIs(t, err, ErrInvalidParameter)
		}

		require.ErrorIs(t, NewPublicKey(params).UnmarshalBinary(pkData[:len(pkData)-1]), ErrMalformedKey)
		require.ErrorIs(t, NewPrivateKey(params).UnmarshalBinary(skData[:len(skData)-1]), ErrMalformedKey)
		require.ErrorIs(t, NewPrivateKey(params).UnmarshalBinary(append(skData, 0)), ErrMalformedKey)

		badOID := append([]byte{}, skData...)
		badOID[0] ^= 0x80
		require.ErrorIs(t, NewPrivateKey(params).UnmarshalBinary(badOID), ErrMalformedKey)

		badTag := append([]byte{}, skData...)
		badTag[3] ^= 1
		require.ErrorIs(t, NewPrivateKey(params).UnmarshalBinary(badTag), ErrMalformedKey)

		// Same total weight and length, but the split between ones and minus ones differs.
		badSplit := append([]byte{}, skData...)
		ones := int(badSplit[4])<<8 | int(badSplit[5])
		negOnes := int(badSplit[6])<<8 | int(badSplit[7])
		badSplit[4], badSplit[5] = byte((ones+1)>>8), byte(ones+1)
		badSplit[6], badSplit[7] = byte((negOnes-1)>>8), byte(negOnes-1)
		require.ErrorIs(t, NewPrivateKey(params).UnmarshalBinary(badSplit), ErrMalformedKey)

		// Well-formed polynomials whose weights do not match the parameters are rejected.
		N := params.N()
		for _, T := range []ring.Ternary{
			{N: N},
			{N: N, Ones: []int{1}},
			{N: N, Ones: []int{0, 2}, NegOnes: []int{1}},
		} {
			var f ring.PrivatePoly = T
			if params.ProductForm() {
				f = ring.ProductForm{F1: T, F2: T, F3: T}
			}

			weak := &PrivateKey{params: params, F: ring.SecretPoly{T: f, Lifted: params.Lifted()}}
			data, err := weak.MarshalBinary()
			require.NoError(t, err)
			require.NotEqual(t, params.PrivateKeyLen(), len(data))
			require.ErrorIs(t, NewPrivateKey(params).UnmarshalBinary(data), ErrMalformedKey)

			// Padded to the expected length, the weights are still checked.
			padded := make([]byte, params.PrivateKeyLen())
			copy(padded, data)
			require.ErrorIs(t, NewPrivateKey(params).UnmarshalBinary(padded), ErrMalformedKey)
		}
	})
}

func testGenKeyPairMulti(tc *testContext, t *testing.T) {
	t.Run(testString("GenKeyPairMulti", tc.params), func(t *testing.T) {

		prng := newTestPRNG(t, "multi")

		sk, pks, err := tc.kgen.GenKeyPairMulti(prng, 4)
		require.NoError(t, err)
		require.Len(t, pks, 4)

		for i := range pks {
			for j := i + 1; j < len(pks); j++ {
				require.False(t, pks[i].Equal(pks[j]))
			}

			enc, err := NewEncryptor(pks[i])
			require.NoError(t, err)
			dec, err := NewDecryptor(&KeyPair{Private: sk, Public: pks[i]})
			require.NoError(t, err)

			msg := []byte{byte(i)}
			ct, err := enc.Encrypt(msg, prng)
			require.NoError(t, err)
			pt, err := dec.Decrypt(ct)
			require.NoError(t, err)
			require.Equal(t, msg, pt)
		}

		_, _, err = tc.kgen.GenKeyPairMulti(prng, 0)
		require.ErrorIs(t, err, ErrInvalidParameter)
	})
}

func testGenPublicKey(tc *testContext, t *testing.T) {
	t.Run(testString("GenPublicKey", tc.params), func(t *testing.T) {

		prng := newTestPRNG(t, "pubgen")

		pk, err := tc.kgen.GenPublicKey(tc.kp.Private, prng)
		require.NoError(t, err)
		require.False(t, pk.Equal(tc.kp.Public))

		enc, err := NewEncryptor(pk)
		require.NoError(t, err)
		dec, err := NewDecryptor(&KeyPair{Private: tc.kp.Private, Public: pk})
		require.NoError(t, err)

		msg := fitMessage(tc.params, "new recipient")
		ct, err := enc.Encrypt(msg, prng)
		require.NoError(t, err)
		pt, err := dec.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, msg, pt)

		// The ciphertext is bound to the public key.
		_, err = tc.dec.Decrypt(ct)
		require.ErrorIs(t, err, ErrDecryptionInvalid)
	})
}

func testDeterministic(tc *testContext, t *testing.T) {
	t.Run(testString("Deterministic", tc.params), func(t *testing.T) {

		var kps [2]*KeyPair
		var cts [2][]byte

		for i := range kps {
			prng := newTestPRNG(t, "deterministic")
			var err error
			kps[i], err = tc.kgen.GenKeyPair(prng)
			require.NoError(t, err)
			enc, err := NewEncryptor(kps[i].Public)
			require.NoError(t, err)
			cts[i], err = enc.Encrypt([]byte("same"), prng)
			require.NoError(t, err)
		}

		require.True(t, kps[0].Private.Equal(kps[1].Private))
		require.True(t, kps[0].Public.Equal(kps[1].Public))
		require.Equal(t, cts[0], cts[1])

		// A different seed gives a different key.
		kp, err := tc.kgen.GenKeyPair(newTestPRNG(t, "other"))
		require.NoError(t, err)
		require.False(t, kp.Public.Equal(kps[0].Public))
	})
}

func TestKeyGeneratorLogger(t *testing.T) {

	params, err := NewParametersFromLiteral(TestTernary)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err = NewKeyGenerator(params, WithLogger(logger)).GenKeyPair(newTestPRNG(t, "logger"))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "generated private polynomial")
	require.Contains(t, buf.String(), "params=TestTernary")
}

func TestGenPublicKeyParametersMismatch(t *testing.T) {

	tc := newTestContext(t, TestTernary)

	other, err := NewParametersFromLiteral(TestTernaryNonLifted)
	require.NoError(t, err)

	_, err = NewKeyGenerator(other).GenPublicKey(tc.kp.Private, newTestPRNG(t, "mismatch"))
	require.ErrorIs(t, err, ErrInvalidParameter)
}
