package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkRing(b *testing.B) {

	for _, params := range testParams[2:] {
		for _, mul := range []Multiplier{Schoolbook, Karatsuba} {

			tc := newTestContext(b, params, mul)
			r := tc.ring
			a, c := tc.uniformPoly(b), tc.uniformPoly(b)
			out := r.NewPoly()
			tern := tc.ternary(b, tc.df, tc.df)
			f := SecretPoly{T: tc.ternary(b, tc.df, tc.df), Lifted: true}

			b.Run(testString("MulPoly", r), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					require.NoError(b, r.MulPoly(a, c, out))
				}
			})

			b.Run(testString("MulTernary", r), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					require.NoError(b, r.MulTernary(a, tern, out))
				}
			})

			b.Run(testString("InvertModQ", r), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_, _ = r.InvertModQ(f)
				}
			})

			b.Run(testString("Encode", r), func(b *testing.B) {
				data := make([]byte, r.EncodedLen())
				for i := 0; i < b.N; i++ {
					_, _ = r.Encode(a, data)
				}
			})
		}
	}
}
