package pages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundUp(t *testing.T) {
	require.Equal(t, 0, RoundUp(0))
	require.Equal(t, 0, RoundUp(-5))
	require.Equal(t, Size, RoundUp(1))
	require.Equal(t, Size, RoundUp(Size))
	require.Equal(t, 2*Size, RoundUp(Size+1))
}

func TestAllocZeroedAndWritable(t *testing.T) {
	data, err := Alloc(100)
	require.NoError(t, err)
	require.Len(t, data, 100)
	require.GreaterOrEqual(t, cap(data), Size)
	for i, b := range data {
		require.Zero(t, b, "byte %d not zeroed", i)
	}
	for i := range data {
		data[i] = byte(i)
	}
	require.Equal(t, byte(99), data[99])
	require.NoError(t, Free(data))
}

func TestAllocZeroLength(t *testing.T) {
	data, err := Alloc(0)
	require.NoError(t, err)
	require.Nil(t, data)
	require.NoError(t, Free(data))
}

func TestAllocNegative(t *testing.T) {
	_, err := Alloc(-1)
	require.Error(t, err)
}
