package route_test

import (
	"testing"

	"lintang/lightwatch/pkg/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func TestFromCoordinates(t *testing.T) {
	t.Run("pairs become waypoints in order", func(t *testing.T) {
		wps, err := route.FromCoordinates([][]float64{{0, 0}, {10, 0}, {20, 5}})
		require.NoError(t, err)
		require.Len(t, wps, 3)
		assert.Equal(t, 20.0, wps[2].Position.X)
		assert.Equal(t, 5.0, wps[2].Position.Y)
	})

	t.Run("empty list is rejected", func(t *testing.T) {
		_, err := route.FromCoordinates(nil)
		assert.ErrorIs(t, err, route.ErrEmptyRoute)
	})

	t.Run("short pair is rejected", func(t *testing.T) {
		_, err := route.FromCoordinates([][]float64{{1}})
		assert.Error(t, err)
	})
}

func TestFromPolyline(t *testing.T) {
	t.Run("decodes what go-polyline encodes", func(t *testing.T) {
		coords := [][]float64{{0, 0}, {10.5, 0}, {21.25, 3}}
		encoded := polyline.EncodeCoords(coords)

		wps, err := route.FromPolyline(string(encoded))
		require.NoError(t, err)
		require.Len(t, wps, 3)
		// polyline precision is 1e-5
		assert.InDelta(t, 10.5, wps[1].Position.X, 1e-4)
		assert.InDelta(t, 3.0, wps[2].Position.Y, 1e-4)
	})

	t.Run("garbage input errors", func(t *testing.T) {
		_, err := route.FromPolyline("")
		assert.Error(t, err)
	})
}
