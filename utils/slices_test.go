package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSortedKeys(t *testing.T) {
	m := map[int]int{1: 1, 3: 3, 2: 2}
	require.Equal(t, []int{1, 2, 3}, GetSortedKeys(m))
	m = map[int]int{-1: 1, -3: 3, -2: 2}
	require.Equal(t, []int{-3, -2, -1}, GetSortedKeys(m))
}

func TestIsStrictlyIncreasing(t *testing.T) {
	require.True(t, IsStrictlyIncreasing([]int{}))
	require.True(t, IsStrictlyIncreasing([]int{0, 4, 400}))
	require.False(t, IsStrictlyIncreasing([]int{0, 4, 4}))
	require.False(t, IsStrictlyIncreasing([]int{5, 4}))
}

func TestRotateSliceInPlace(t *testing.T) {
	s := []int64{0, 1, 2, 3, 4, 5, 6, 7}
	RotateSliceInPlace(s, 3)
	require.Equal(t, []int64{3, 4, 5, 6, 7, 0, 1, 2}, s)

	RotateSliceInPlace(s, -3)
	require.Equal(t, []int64{0, 1, 2, 3, 4, 5, 6, 7}, s)

	RotateSliceInPlace(s, 11)
	require.Equal(t, []int64{3, 4, 5, 6, 7, 0, 1, 2}, s)

	RotateSliceInPlace(s, 0)
	require.Equal(t, []int64{3, 4, 5, 6, 7, 0, 1, 2}, s)

	RotateSliceInPlace([]int{}, 4)
}

func TestAlias1D(t *testing.T) {
	s := make([]int64, 8)
	require.True(t, Alias1D(s, s[2:4]))
	require.False(t, Alias1D(s, make([]int64, 8)))
}
