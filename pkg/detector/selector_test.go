package detector_test

import (
	"math"
	"testing"

	"lintang/lightwatch/pkg/datastructure"
	"lintang/lightwatch/pkg/detector"
	"lintang/lightwatch/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poseAt(x, y, yaw float64) *datastructure.Pose {
	return &datastructure.Pose{
		Position:    datastructure.NewPoint(x, y),
		Orientation: geo.YawToQuaternion(yaw),
	}
}

func redLightAt(x, y float64) datastructure.TrafficLight {
	return datastructure.TrafficLight{
		Position: datastructure.NewPoint(x, y),
		State:    datastructure.StateRed,
	}
}

func TestLightSelector(t *testing.T) {
	s := detector.DefaultLightSelector()

	t.Run("no pose returns nothing", func(t *testing.T) {
		assert.Nil(t, s.Select(nil, []datastructure.TrafficLight{redLightAt(100, 0)}))
	})

	t.Run("empty light set returns nothing", func(t *testing.T) {
		assert.Nil(t, s.Select(poseAt(0, 0, 0), nil))
	})

	t.Run("light straight ahead is selected", func(t *testing.T) {
		got := s.Select(poseAt(0, 0, 0), []datastructure.TrafficLight{redLightAt(100, 0)})
		require.NotNil(t, got)
		assert.Equal(t, 100.0, got.Position.X)
	})

	t.Run("light inside the minimum distance is never selected", func(t *testing.T) {
		assert.Nil(t, s.Select(poseAt(0, 0, 0), []datastructure.TrafficLight{redLightAt(10, 0)}))
	})

	t.Run("light at exactly the minimum distance is excluded", func(t *testing.T) {
		// open interval: 20 is out, 20.001 is in
		assert.Nil(t, s.Select(poseAt(0, 0, 0), []datastructure.TrafficLight{redLightAt(detector.MinLightDistance, 0)}))
	})

	t.Run("light beyond the maximum distance is never selected", func(t *testing.T) {
		assert.Nil(t, s.Select(poseAt(0, 0, 0), []datastructure.TrafficLight{redLightAt(500, 0)}))
	})

	t.Run("light outside the heading cone is never selected", func(t *testing.T) {
		// 45 degrees off the heading, well outside the 20 degree cone
		assert.Nil(t, s.Select(poseAt(0, 0, 0), []datastructure.TrafficLight{redLightAt(100, 100)}))
	})

	t.Run("light behind the vehicle is never selected", func(t *testing.T) {
		assert.Nil(t, s.Select(poseAt(0, 0, 0), []datastructure.TrafficLight{redLightAt(-100, 0)}))
	})

	t.Run("closest qualifying light wins", func(t *testing.T) {
		lights := []datastructure.TrafficLight{
			redLightAt(250, 0),
			redLightAt(80, 0),
			redLightAt(150, 0),
		}
		got := s.Select(poseAt(0, 0, 0), lights)
		require.NotNil(t, got)
		assert.Equal(t, 80.0, got.Position.X)
	})

	t.Run("selection follows the vehicle yaw", func(t *testing.T) {
		// heading north, the light to the east is outside the cone
		lights := []datastructure.TrafficLight{redLightAt(100, 0), redLightAt(0, 100)}
		got := s.Select(poseAt(0, 0, math.Pi/2), lights)
		require.NotNil(t, got)
		assert.Equal(t, 100.0, got.Position.Y)
	})

	t.Run("cone test holds near the pi boundary", func(t *testing.T) {
		// heading almost exactly -x, light slightly across the boundary
		got := s.Select(poseAt(0, 0, -math.Pi+0.05), []datastructure.TrafficLight{redLightAt(-100, 1)})
		require.NotNil(t, got)
	})
}
