package geo

import (
	"math"

	"lintang/lightwatch/pkg/datastructure"

	"github.com/golang/geo/r2"
)

// PlanarDistance is the euclidean distance between two map points in the
// horizontal plane. Z is ignored.
func PlanarDistance(p1, p2 datastructure.Point) float64 {
	a := r2.Point{X: p1.X, Y: p1.Y}
	b := r2.Point{X: p2.X, Y: p2.Y}
	return a.Sub(b).Norm()
}

// Bearing is the angle of the vector from -> to, counterclockwise from the
// +X axis, in radians.
func Bearing(from, to datastructure.Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// NormalizeAngle maps an angle into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// WithinHeadingCone reports whether the target lies within halfAngle of the
// vehicle heading. The difference is normalized first so the test keeps
// working across the +-pi boundary.
func WithinHeadingCone(yaw float64, from, to datastructure.Point, halfAngle float64) bool {
	diff := NormalizeAngle(yaw - Bearing(from, to))
	return math.Abs(diff) < halfAngle
}

// YawFromQuaternion converts a localization orientation quaternion to the
// heading angle around the Z axis.
func YawFromQuaternion(q datastructure.Quaternion) float64 {
	sinYaw := 2 * (q.W*q.Z + q.X*q.Y)
	cosYaw := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	return math.Atan2(sinYaw, cosYaw)
}

// YawToQuaternion is the inverse of YawFromQuaternion for a rotation purely
// around Z. Used by tests and the simulator feed.
func YawToQuaternion(yaw float64) datastructure.Quaternion {
	return datastructure.Quaternion{
		Z: math.Sin(yaw / 2),
		W: math.Cos(yaw / 2),
	}
}
