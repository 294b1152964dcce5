package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitLen(t *testing.T) {
	require.Equal(t, 0, BitLen(1))
	require.Equal(t, 1, BitLen(2))
	require.Equal(t, 11, BitLen(2048))
	require.Equal(t, 9, BitLen(401))
	require.Equal(t, 11, BitLen(1499))
}

func TestIsPowerOfTwo(t *testing.T) {
	require.True(t, IsPowerOfTwo(1))
	require.True(t, IsPowerOfTwo(2048))
	require.False(t, IsPowerOfTwo(0))
	require.False(t, IsPowerOfTwo(2047))
}

func TestGCD(t *testing.T) {
	require.Equal(t, 6, GCD(12, 18))
	require.Equal(t, 1, GCD(401, 3))
	require.Equal(t, 5, GCD(0, -5))
}

func TestCeilDiv(t *testing.T) {
	require.Equal(t, 552, CeilDiv(401*11, 8))
	require.Equal(t, 1, CeilDiv(1, 8))
	require.Equal(t, 0, CeilDiv(0, 8))
}
