// Package route turns inbound route payloads into the waypoint sequence the
// detector indexes. The route arrives once, wholesale, either as an explicit
// coordinate list or as an encoded polyline.
package route

import (
	"errors"

	"lintang/lightwatch/pkg/datastructure"

	"github.com/twpayne/go-polyline"
)

var ErrEmptyRoute = errors.New("route carries no waypoints")

// FromPolyline decodes an encoded polyline into waypoints. The first value of
// each pair is X, the second Y, matching the (x, y) plane the rest of the
// node works in.
func FromPolyline(encoded string) ([]datastructure.Waypoint, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	if len(coords) == 0 {
		return nil, ErrEmptyRoute
	}

	waypoints := make([]datastructure.Waypoint, len(coords))
	for i, c := range coords {
		waypoints[i] = datastructure.Waypoint{Position: datastructure.NewPoint(c[0], c[1])}
	}
	return waypoints, nil
}

// FromCoordinates converts an [x, y] pair list into waypoints.
func FromCoordinates(coords [][]float64) ([]datastructure.Waypoint, error) {
	if len(coords) == 0 {
		return nil, ErrEmptyRoute
	}

	waypoints := make([]datastructure.Waypoint, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, errors.New("waypoint needs at least x and y")
		}
		waypoints[i] = datastructure.Waypoint{Position: datastructure.NewPoint(c[0], c[1])}
	}
	return waypoints, nil
}
