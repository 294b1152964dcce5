package digest

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKnownAnswers(t *testing.T) {
	for _, tc := range []struct {
		h    Func
		want string
	}{
		{SHA1, "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{SHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{SHA3_256, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
	} {
		t.Run(tc.h.Name(), func(t *testing.T) {
			d := tc.h.Sum([]byte("abc"))
			require.Equal(t, tc.want, hex.EncodeToString(d))
			require.Len(t, d, tc.h.Size())
		})
	}
}

func TestSumBatch(t *testing.T) {
	in := [][]byte{[]byte("a"), []byte("b"), []byte(""), []byte("abcdef")}
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			h, err := ByName(name)
			require.NoError(t, err)
			out := h.SumBatch(in)
			require.Len(t, out, len(in))
			for i := range in {
				require.Equal(t, h.Sum(in[i]), out[i])
				require.Len(t, out[i], h.Size())
			}
		})
	}
}

func TestByName(t *testing.T) {
	_, err := ByName("md5")
	require.Error(t, err)
	require.Equal(t, []string{NameBLAKE2b256, NameBLAKE3, NameSHA1, NameSHA256, NameSHA3_256}, Names())

	for _, name := range Names() {
		h, err := ByName(name)
		require.NoError(t, err)
		require.Equal(t, name, h.Name())
	}
}
