package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"lintang/lightwatch/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traffic_light_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
stop_line_positions:
  - [90, 0]
  - [350.5, 12.25, 1.57]
min_light_distance: 15
max_light_distance: 250
heading_cone_degrees: 25
state_count_threshold: 4
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 15.0, cfg.MinLightDistance)
		assert.Equal(t, 4, cfg.StateCountThreshold)
		assert.InDelta(t, 25*math.Pi/180, cfg.ConeHalfAngleRad(), 1e-9)

		lines := cfg.StopLines()
		require.Len(t, lines, 2)
		assert.Equal(t, 90.0, lines[0].X)
		assert.Equal(t, 1.57, lines[1].Yaw)
	})

	t.Run("thresholds default when omitted", func(t *testing.T) {
		path := writeConfig(t, "stop_line_positions:\n  - [90, 0]\n")
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 20.0, cfg.MinLightDistance)
		assert.Equal(t, 300.0, cfg.MaxLightDistance)
		assert.Equal(t, 3, cfg.StateCountThreshold)
	})

	t.Run("missing stop lines fail validation", func(t *testing.T) {
		path := writeConfig(t, "min_light_distance: 10\n")
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("one element stop line fails validation", func(t *testing.T) {
		path := writeConfig(t, "stop_line_positions:\n  - [90]\n")
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("max below min fails validation", func(t *testing.T) {
		path := writeConfig(t, `
stop_line_positions:
  - [90, 0]
min_light_distance: 100
max_light_distance: 50
`)
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
