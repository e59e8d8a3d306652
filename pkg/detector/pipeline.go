package detector

import (
	"context"
	"log"
	"sync"

	"lintang/lightwatch/pkg/datastructure"
)

// CaptureObserver receives (ground truth state, frame) pairs for dataset
// collection. It sits entirely outside the decision path: the pipeline
// behaves identically whether an observer is attached or not.
type CaptureObserver interface {
	Observe(state datastructure.LightState, lightPosition datastructure.Point, image []byte)
}

// Pipeline runs the full per frame decision: select the relevant light,
// locate its stop waypoint on the route, classify the frame and debounce the
// result into a stable published value.
//
// Pose, route and light set are latest value caches, each replaced wholesale
// by its update method. A one frame lag between them is tolerable, so every
// cache has its own lock and no cross field snapshot is taken.
type Pipeline struct {
	selector   *LightSelector
	locator    *StopLineLocator
	classifier Classifier
	capture    CaptureObserver
	latch      *DebounceLatch

	poseMu sync.Mutex
	pose   *datastructure.Pose

	lightsMu sync.Mutex
	lights   []datastructure.TrafficLight

	// frameMu serializes frame processing; updates stay concurrent.
	frameMu sync.Mutex
}

// NewPipeline wires the per frame decision chain. A nil classifier puts the
// pipeline in simulator mode: the selected light's reported ground truth
// state is used directly instead of looking at pixels. A nil capture observer
// disables dataset collection.
func NewPipeline(selector *LightSelector, locator *StopLineLocator, classifier Classifier, capture CaptureObserver, stateCountThreshold int) *Pipeline {
	return &Pipeline{
		selector:   selector,
		locator:    locator,
		classifier: classifier,
		capture:    capture,
		latch:      NewDebounceLatch(stateCountThreshold),
	}
}

// UpdatePose replaces the cached localization sample.
func (p *Pipeline) UpdatePose(pose datastructure.Pose) {
	p.poseMu.Lock()
	p.pose = &pose
	p.poseMu.Unlock()
}

// UpdateRoute replaces the route wholesale and rebuilds the waypoint index.
func (p *Pipeline) UpdateRoute(waypoints []datastructure.Waypoint) {
	p.locator.SetRoute(waypoints)
}

// UpdateLights replaces the tracked light set wholesale. There is no per
// light identity across updates.
func (p *Pipeline) UpdateLights(lights []datastructure.TrafficLight) {
	p.lightsMu.Lock()
	p.lights = lights
	p.lightsMu.Unlock()
}

// ProcessFrame runs one pass for an incoming camera frame and returns the
// waypoint index to publish: the index the vehicle must stop at for a red
// light, or NoStopWaypoint. Missing pose, route, lights or image and any
// locate or classify failure all degrade to "no stop" for this frame; nothing
// here is fatal.
func (p *Pipeline) ProcessFrame(ctx context.Context, image []byte) int {
	p.frameMu.Lock()
	defer p.frameMu.Unlock()

	pose := p.currentPose()
	lights := p.currentLights()

	light := p.selector.Select(pose, lights)

	if light != nil && p.capture != nil && len(image) > 0 {
		p.capture.Observe(light.State, light.Position, image)
	}

	waypoint, state := p.evaluate(ctx, light, image)
	return p.latch.Observe(state, waypoint)
}

// StopWaypoint returns the last committed published value without processing
// a frame.
func (p *Pipeline) StopWaypoint() int {
	p.frameMu.Lock()
	defer p.frameMu.Unlock()
	return p.latch.CommittedWaypoint()
}

func (p *Pipeline) evaluate(ctx context.Context, light *datastructure.TrafficLight, image []byte) (int, datastructure.LightState) {
	if light == nil || len(image) == 0 {
		return datastructure.NoStopWaypoint, datastructure.StateUnknown
	}

	waypoint, err := p.locator.Locate(*light)
	if err != nil {
		log.Printf("stop line lookup failed: %v", err)
		return datastructure.NoStopWaypoint, datastructure.StateUnknown
	}

	if p.classifier == nil {
		// simulator mode, the upstream light set carries ground truth
		return waypoint, light.State
	}

	state, err := p.classifier.Classify(ctx, image)
	if err != nil {
		log.Printf("classifier failed: %v", err)
		return datastructure.NoStopWaypoint, datastructure.StateUnknown
	}

	return waypoint, state
}

func (p *Pipeline) currentPose() *datastructure.Pose {
	p.poseMu.Lock()
	defer p.poseMu.Unlock()
	return p.pose
}

func (p *Pipeline) currentLights() []datastructure.TrafficLight {
	p.lightsMu.Lock()
	defer p.lightsMu.Unlock()
	return p.lights
}
