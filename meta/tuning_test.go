package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadTuning(t *testing.T) {
	t.Run("overriding only the given keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		require.NoError(t, os.WriteFile(path, []byte("capture_ratio: 2.0\nwasteland_cost: 10\n"), 0o644))

		got, err := LoadTuning(path)

		require.NoError(t, err)
		require.Equal(t, 2.0, got.CaptureRatio, "Should take the file's capture ratio")
		require.Equal(t, 10, got.WastelandCost, "Should take the file's wasteland cost")
		require.Equal(t, DEFEND_RATIO, got.DefendRatio, "Should keep the default defend ratio")
		require.Equal(t, UNKNOWN_COST, got.UnknownCost, "Should keep the default unknown cost")
	})

	t.Run("failing on a missing file", func(t *testing.T) {
		_, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("failing on malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		require.NoError(t, os.WriteFile(path, []byte("capture_ratio: [oops\n"), 0o644))

		_, err := LoadTuning(path)
		require.Error(t, err)
	})

	t.Run("rejecting a non-positive capture ratio", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		require.NoError(t, os.WriteFile(path, []byte("capture_ratio: 0\n"), 0o644))

		_, err := LoadTuning(path)
		require.ErrorContains(t, err, "capture_ratio")
	})
}

func TestDefaultTuning(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate(), "Defaults should always be valid")
}
