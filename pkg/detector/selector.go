package detector

import (
	"math"

	"lintang/lightwatch/pkg/datastructure"
	"lintang/lightwatch/pkg/geo"
)

const (
	// MinLightDistance / MaxLightDistance bound the open distance interval a
	// light must fall in to matter for the current frame. Closer than the
	// minimum the camera is already past the useful braking point, farther
	// than the maximum the light is not visible yet.
	MinLightDistance = 20.0
	MaxLightDistance = 300.0

	// HeadingConeHalfAngle is the half angle of the cone around the vehicle
	// yaw inside which a light counts as "ahead" (20 degrees).
	HeadingConeHalfAngle = math.Pi / 9
)

// LightSelector picks the one relevant traffic light in front of the vehicle.
type LightSelector struct {
	minDistance float64
	maxDistance float64
	halfAngle   float64
}

func NewLightSelector(minDistance, maxDistance, halfAngle float64) *LightSelector {
	return &LightSelector{
		minDistance: minDistance,
		maxDistance: maxDistance,
		halfAngle:   halfAngle,
	}
}

func DefaultLightSelector() *LightSelector {
	return NewLightSelector(MinLightDistance, MaxLightDistance, HeadingConeHalfAngle)
}

// Select scans the known lights and returns the closest one that lies in the
// (minDistance, maxDistance) band and inside the heading cone of the vehicle
// yaw. Returns nil when the pose is missing, the set is empty, or no light
// qualifies. Pure function of its inputs, ties keep the first seen.
func (s *LightSelector) Select(pose *datastructure.Pose, lights []datastructure.TrafficLight) *datastructure.TrafficLight {
	if pose == nil || len(lights) == 0 {
		return nil
	}

	yaw := geo.YawFromQuaternion(pose.Orientation)

	var result *datastructure.TrafficLight
	bestDistance := math.Inf(1)

	for i := range lights {
		distance := geo.PlanarDistance(pose.Position, lights[i].Position)
		if distance >= bestDistance {
			continue
		}
		if distance <= s.minDistance || distance >= s.maxDistance {
			continue
		}
		if !geo.WithinHeadingCone(yaw, pose.Position, lights[i].Position, s.halfAngle) {
			continue
		}

		bestDistance = distance
		result = &lights[i]
	}

	return result
}
