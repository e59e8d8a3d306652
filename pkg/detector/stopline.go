package detector

import (
	"errors"
	"math"
	"sync"

	"lintang/lightwatch/pkg/datastructure"
	"lintang/lightwatch/pkg/geo"

	"github.com/dhconnelly/rtreego"
)

var (
	// ErrNoWaypoints means a lookup ran before any route was received.
	ErrNoWaypoints = errors.New("no route waypoints loaded")
	// ErrNoStopLines means the node was started without stop line config.
	ErrNoStopLines = errors.New("no stop line positions configured")
)

var waypointTol = 0.0001

type waypointEntry struct {
	Location rtreego.Point
	Index    int
}

func (w *waypointEntry) Bounds() rtreego.Rect {
	// bounds of w is a rectangle centered at w.Location
	// with side lengths 2 * waypointTol
	return w.Location.ToRect(waypointTol)
}

// StopLineLocator answers "at which route waypoint must the vehicle halt for
// this light". The route is indexed in an rtree once per route load so the
// per frame lookup is a single nearest neighbour query.
type StopLineLocator struct {
	stopLines []datastructure.StopLine

	mu           sync.RWMutex
	tree         *rtreego.Rtree
	numWaypoints int
}

func NewStopLineLocator(stopLines []datastructure.StopLine) *StopLineLocator {
	return &StopLineLocator{stopLines: stopLines}
}

// SetRoute replaces the indexed route wholesale. The waypoint sequence is
// fixed after load, so the tree is rebuilt rather than patched.
func (l *StopLineLocator) SetRoute(waypoints []datastructure.Waypoint) {
	tree := rtreego.NewTree(2, 25, 50)
	for i := range waypoints {
		tree.Insert(&waypointEntry{
			Location: rtreego.Point{waypoints[i].Position.X, waypoints[i].Position.Y},
			Index:    i,
		})
	}

	l.mu.Lock()
	l.tree = tree
	l.numWaypoints = len(waypoints)
	l.mu.Unlock()
}

// HasRoute reports whether a non empty route has been received.
func (l *StopLineLocator) HasRoute() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.numWaypoints > 0
}

// Locate maps the selected light to the index of the route waypoint nearest
// to the light's stop line. The stop line for a light is the configured
// position closest to the light itself; the config carries one stop line per
// intersection, index aligned with the lights of the map.
//
// No directionality constraint is applied: the heading cone in the selector
// already guarantees the light is in front of the vehicle.
func (l *StopLineLocator) Locate(light datastructure.TrafficLight) (int, error) {
	l.mu.RLock()
	tree := l.tree
	numWaypoints := l.numWaypoints
	l.mu.RUnlock()

	if tree == nil || numWaypoints == 0 {
		return datastructure.NoStopWaypoint, ErrNoWaypoints
	}
	if len(l.stopLines) == 0 {
		return datastructure.NoStopWaypoint, ErrNoStopLines
	}

	stopLine := l.nearestStopLine(light.Position)

	nearest := tree.NearestNeighbor(rtreego.Point{stopLine.X, stopLine.Y})
	if nearest == nil {
		return datastructure.NoStopWaypoint, ErrNoWaypoints
	}

	return nearest.(*waypointEntry).Index, nil
}

func (l *StopLineLocator) nearestStopLine(p datastructure.Point) datastructure.StopLine {
	best := l.stopLines[0]
	bestDistance := math.Inf(1)
	for _, sl := range l.stopLines {
		distance := geo.PlanarDistance(p, sl.Point())
		if distance < bestDistance {
			bestDistance = distance
			best = sl
		}
	}
	return best
}
