package datastructure

// LightState is the color state reported for / classified from a traffic light.
type LightState int

const (
	StateRed LightState = iota
	StateYellow
	StateGreen
	StateUnknown
)

// NoStopWaypoint is published when no red light requires a stop.
const NoStopWaypoint = -1

func (s LightState) String() string {
	switch s {
	case StateRed:
		return "red"
	case StateYellow:
		return "yellow"
	case StateGreen:
		return "green"
	default:
		return "unknown"
	}
}

func ParseLightState(s string) LightState {
	switch s {
	case "red":
		return StateRed
	case "yellow":
		return StateYellow
	case "green":
		return StateGreen
	default:
		return StateUnknown
	}
}

// Point is a position on the map plane. Only X and Y take part in any
// distance or bearing computation, Z is carried for completeness.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Pose is the latest localization sample. Each new sample replaces the
// previous one wholesale, no history is kept.
type Pose struct {
	Position    Point      `json:"position"`
	Orientation Quaternion `json:"orientation"`
}

// Waypoint is one point of the planned route. Its index in the route slice is
// the stable identity used everywhere else in the system.
type Waypoint struct {
	Position Point `json:"position"`
}

// TrafficLight is a known light position plus its reported (ground truth or
// last known) state. The upstream source replaces the whole set on update.
type TrafficLight struct {
	Position Point      `json:"position"`
	State    LightState `json:"state"`
}

// StopLine is the configured halt position in front of one intersection.
type StopLine struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Yaw float64 `json:"yaw,omitempty"`
}

func (s StopLine) Point() Point {
	return Point{X: s.X, Y: s.Y}
}
