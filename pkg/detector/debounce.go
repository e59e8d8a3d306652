package detector

import "lintang/lightwatch/pkg/datastructure"

// StateCountThreshold is how many consecutive identical classifications are
// needed before the published stop command changes.
const StateCountThreshold = 3

// DebounceLatch stabilizes the noisy per frame (state, waypoint) observations
// into the published stop waypoint. A single misclassification cannot flip
// the output; only threshold consecutive identical observations can.
type DebounceLatch struct {
	threshold int

	observed datastructure.LightState
	count    int

	committedState    datastructure.LightState
	committedWaypoint int
}

func NewDebounceLatch(threshold int) *DebounceLatch {
	if threshold < 1 {
		threshold = 1
	}
	return &DebounceLatch{
		threshold:         threshold,
		observed:          datastructure.StateUnknown,
		committedState:    datastructure.StateUnknown,
		committedWaypoint: datastructure.NoStopWaypoint,
	}
}

// Observe feeds the observation of one processed frame and returns the
// waypoint index to publish for that frame.
//
// The count restarts whenever the observed state changes and clamps at the
// threshold, so an already stable state keeps emitting the same committed
// waypoint forever without overflowing.
func (d *DebounceLatch) Observe(state datastructure.LightState, waypoint int) int {
	if state != d.observed {
		d.observed = state
		d.count = 1
	} else if d.count < d.threshold {
		d.count++
	}

	if d.count >= d.threshold {
		d.committedState = state
		if state == datastructure.StateRed {
			d.committedWaypoint = waypoint
		} else {
			d.committedWaypoint = datastructure.NoStopWaypoint
		}
	}

	return d.committedWaypoint
}

// CommittedWaypoint returns the last stable published value.
func (d *DebounceLatch) CommittedWaypoint() int {
	return d.committedWaypoint
}

// CommittedState returns the last stable light state.
func (d *DebounceLatch) CommittedState() datastructure.LightState {
	return d.committedState
}
