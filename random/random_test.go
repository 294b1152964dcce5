package random

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/tuneinsight/ntru/digest"
	"github.com/tuneinsight/ntru/utils"
)

var deterministicGenerators = []Generator{
	Blake2b,
	HMACDRBG,
	ChaCha20,
	HashStream(digest.SHA256),
	HashStream(digest.SHA1),
}

func TestDeterministicReproducibility(t *testing.T) {

	seed := []byte("my test seed")

	for _, gen := range deterministicGenerators {

		t.Run(gen.Name(), func(t *testing.T) {

			ctx0, err := NewDeterministicContext(gen, seed)
			require.NoError(t, err)
			defer ctx0.Close()

			ctx1, err := NewDeterministicContext(gen, seed)
			require.NoError(t, err)
			defer ctx1.Close()

			// Same output regardless of how the reads are split.
			a, err := ctx0.Generate(1000)
			require.NoError(t, err)

			var b []byte
			for _, n := range []int{1, 31, 32, 33, 400, 503} {
				chunk, err := ctx1.Generate(n)
				require.NoError(t, err)
				b = append(b, chunk...)
			}

			require.True(t, gen.Deterministic())
			require.Equal(t, seed, ctx0.Seed())

			// HMAC-DRBG updates its state after every request, so only the
			// first request is split-invariant.
			if gen == HMACDRBG {
				require.Equal(t, a[:1], b[:1])
				return
			}

			require.Equal(t, a, b)
		})
	}
}

func TestDeterministicSeedsDiffer(t *testing.T) {
	for _, gen := range deterministicGenerators {
		t.Run(gen.Name(), func(t *testing.T) {
			ctx0, err := NewDeterministicContext(gen, []byte("seed A"))
			require.NoError(t, err)
			ctx1, err := NewDeterministicContext(gen, []byte("seed B"))
			require.NoError(t, err)

			a, err := ctx0.Generate(64)
			require.NoError(t, err)
			b, err := ctx1.Generate(64)
			require.NoError(t, err)
			require.False(t, bytes.Equal(a, b))
		})
	}
}

func TestHMACDRBGSequence(t *testing.T) {
	ctx0, err := NewDeterministicContext(HMACDRBG, []byte("seed"))
	require.NoError(t, err)
	ctx1, err := NewDeterministicContext(HMACDRBG, []byte("seed"))
	require.NoError(t, err)

	for _, n := range []int{16, 100, 3} {
		a, err := ctx0.Generate(n)
		require.NoError(t, err)
		b, err := ctx1.Generate(n)
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestSystemContext(t *testing.T) {

	ctx, err := NewContext(System)
	require.NoError(t, err)

	a, err := ctx.Generate(32)
	require.NoError(t, err)
	b, err := ctx.Generate(32)
	require.NoError(t, err)
	require.False(t, bytes.Equal(a, b))
	require.Nil(t, ctx.Seed())

	_, err = NewDeterministicContext(System, []byte("seed"))
	require.ErrorIs(t, err, ErrNotDeterministic)
}

func TestUnseededDeterministicContext(t *testing.T) {
	for _, gen := range deterministicGenerators {
		t.Run(gen.Name(), func(t *testing.T) {
			ctx0, err := NewContext(gen)
			require.NoError(t, err)
			ctx1, err := NewContext(gen)
			require.NoError(t, err)
			a, err := ctx0.Generate(32)
			require.NoError(t, err)
			b, err := ctx1.Generate(32)
			require.NoError(t, err)
			require.False(t, bytes.Equal(a, b))
		})
	}
}

func TestDeviceContext(t *testing.T) {

	if _, err := os.Stat("/dev/urandom"); err != nil {
		t.Skip("no /dev/urandom on this platform")
	}

	ctx, err := NewContext(DevURandom)
	require.NoError(t, err)
	buf, err := ctx.Generate(64)
	require.NoError(t, err)
	require.Len(t, buf, 64)
	require.NoError(t, ctx.Close())
}

func TestRelease(t *testing.T) {

	ctx, err := NewDeterministicContext(Blake2b, []byte("seed"))
	require.NoError(t, err)

	require.NoError(t, ctx.Close())
	require.NoError(t, ctx.Close())

	_, err = ctx.Generate(8)
	require.ErrorIs(t, err, ErrReleased)
}

func TestInvalidSeed(t *testing.T) {
	_, err := NewDeterministicContext(Blake2b, nil)
	require.Error(t, err)
	_, err = NewDeterministicContext(Blake2b, make([]byte, 1<<16))
	require.Error(t, err)
}

type failingGenerator struct{}

func (failingGenerator) Name() string        { return "failing" }
func (failingGenerator) Deterministic() bool { return false }
func (failingGenerator) New([]byte) (State, error) {
	return failingState{}, nil
}

type failingState struct{}

func (failingState) Read(p []byte) (int, error) { return 0, os.ErrClosed }
func (failingState) Close() error               { return nil }

func TestProviderFailure(t *testing.T) {
	ctx, err := NewContext(failingGenerator{})
	require.NoError(t, err)
	_, err = ctx.Generate(1)
	require.ErrorIs(t, err, ErrRandomnessUnavailable)
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		gen, err := ByName(name)
		require.NoError(t, err)
		require.Equal(t, name, gen.Name())
	}
	require.Equal(t, []string{"blake2b", "chacha20", "devrandom", "devurandom", "hmac-drbg", "system"}, Names())

	_, err := ByName("rdrand")
	require.Error(t, err)
}

func TestBlake2bStream(t *testing.T) {

	seed := []byte("blake2b seed")

	ctx, err := NewDeterministicContext(Blake2b, seed)
	require.NoError(t, err)
	defer ctx.Close()

	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, seed)
	require.NoError(t, err)
	_, err = xof.Write(seed)
	require.NoError(t, err)

	want := make([]byte, 300)
	_, err = xof.Read(want)
	require.NoError(t, err)

	got := make([]byte, 0, len(want))
	for len(got) < len(want) {
		chunk, err := ctx.Generate(utils.MinInt(64, len(want)-len(got)))
		require.NoError(t, err)
		got = append(got, chunk...)
	}

	require.Equal(t, want, got)
}
