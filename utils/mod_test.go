package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	t.Run("rounding halves up", func(t *testing.T) {
		require.Equal(t, 9, Round(1.7*5), "8.5 should round to 9")
		require.Equal(t, 2, Round(0.6*3), "1.8 should round to 2")
		require.Equal(t, 0, Round(0.4), "0.4 should round to 0")
	})

	t.Run("taking absolute values", func(t *testing.T) {
		require.Equal(t, 3, Abs(-3))
		require.Equal(t, 3, Abs(3))
	})
}
