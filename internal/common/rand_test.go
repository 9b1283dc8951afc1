package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	s1, err := MakeRandHexString(16)
	require.NoError(t, err)
	require.Len(t, s1, 32)

	s2, err := MakeRandHexString(16)
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)
}

func TestRandomHue_Range(t *testing.T) {
	for i := 0; i < 100; i++ {
		h, err := RandomHue()
		require.NoError(t, err)
		require.GreaterOrEqual(t, h, 0)
		require.LessOrEqual(t, h, 359)
	}
}
