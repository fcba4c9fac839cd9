package application

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5.0, cfg.Gate.ShiftThresholdMM)
	assert.Equal(t, math.Pi/36, cfg.Gate.RotationThresholdRad)
	assert.Equal(t, 1.1, cfg.Gate.ScaleThreshold)

	require.Len(t, cfg.Strategies, 2)
	assert.Equal(t, StrategySurfaceBoundary, cfg.Strategies[0].Name)
	assert.Equal(t, StrategyIntensityBoundary, cfg.Strategies[1].Name)
	for _, s := range cfg.Strategies {
		assert.Equal(t, 6, s.DOF)
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		doc := `
gate:
  shift_threshold_mm: 2.0
  rotation_threshold_rad: 0.05
  scale_threshold: 1.05
strategies:
  - name: surface_boundary
    dof: 6
  - name: intensity_boundary
    dof: 9
`
		cfg, err := ParseConfig([]byte(doc))
		require.NoError(t, err)

		assert.Equal(t, 2.0, cfg.Gate.ShiftThresholdMM)
		assert.Equal(t, 0.05, cfg.Gate.RotationThresholdRad)
		assert.Equal(t, 1.05, cfg.Gate.ScaleThreshold)
		require.Len(t, cfg.Strategies, 2)
		assert.Equal(t, 9, cfg.Strategies[1].DOF)
	})

	t.Run("omitted fields keep defaults", func(t *testing.T) {
		doc := `
gate:
  shift_threshold_mm: 2.0
  rotation_threshold_rad: 0.05
  scale_threshold: 1.05
`
		cfg, err := ParseConfig([]byte(doc))
		require.NoError(t, err)

		assert.Equal(t, 2.0, cfg.Gate.ShiftThresholdMM)
		require.Len(t, cfg.Strategies, 2, "defaults survive a partial document")
	})

	t.Run("unknown strategy name rejected", func(t *testing.T) {
		doc := `
strategies:
  - name: freeform
    dof: 6
`
		_, err := ParseConfig([]byte(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("unsupported dof rejected", func(t *testing.T) {
		doc := `
strategies:
  - name: surface_boundary
    dof: 7
`
		_, err := ParseConfig([]byte(doc))
		require.Error(t, err)
	})

	t.Run("non-positive threshold rejected", func(t *testing.T) {
		doc := `
gate:
  shift_threshold_mm: 0
  rotation_threshold_rad: 0.05
  scale_threshold: 1.05
`
		_, err := ParseConfig([]byte(doc))
		require.Error(t, err)
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		_, err := ParseConfig([]byte("gate: [not a mapping"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("round trip from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		doc := "gate:\n  shift_threshold_mm: 3.5\n  rotation_threshold_rad: 0.02\n  scale_threshold: 1.2\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 3.5, cfg.Gate.ShiftThresholdMM)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})
}
