package service

import (
	"context"

	"lintang/lightwatch/pkg/capture"
	"lintang/lightwatch/pkg/datastructure"
	"lintang/lightwatch/pkg/route"
	"lintang/lightwatch/pkg/server"
)

// Pipeline is the per frame decision engine behind the API.
type Pipeline interface {
	UpdatePose(pose datastructure.Pose)
	UpdateRoute(waypoints []datastructure.Waypoint)
	UpdateLights(lights []datastructure.TrafficLight)
	ProcessFrame(ctx context.Context, image []byte) int
	StopWaypoint() int
}

// CaptureStats exposes dataset collection counters.
type CaptureStats interface {
	Stats() capture.Stats
}

type DetectorService struct {
	pipeline Pipeline
	capture  CaptureStats
}

// NewDetectorService wires the pipeline behind the REST surface. captureStats
// may be nil when dataset collection is disabled.
func NewDetectorService(pipeline Pipeline, captureStats CaptureStats) *DetectorService {
	return &DetectorService{pipeline: pipeline, capture: captureStats}
}

func (uc *DetectorService) SetPose(ctx context.Context, pose datastructure.Pose) error {
	uc.pipeline.UpdatePose(pose)
	return nil
}

// SetRoute replaces the route from an explicit coordinate list.
func (uc *DetectorService) SetRoute(ctx context.Context, coords [][]float64) (int, error) {
	waypoints, err := route.FromCoordinates(coords)
	if err != nil {
		return 0, server.WrapErrorf(err, server.ErrBadParamInput, "invalid route waypoints")
	}
	uc.pipeline.UpdateRoute(waypoints)
	return len(waypoints), nil
}

// SetRouteFromPolyline replaces the route from an encoded polyline.
func (uc *DetectorService) SetRouteFromPolyline(ctx context.Context, encoded string) (int, error) {
	waypoints, err := route.FromPolyline(encoded)
	if err != nil {
		return 0, server.WrapErrorf(err, server.ErrBadParamInput, "invalid route polyline")
	}
	uc.pipeline.UpdateRoute(waypoints)
	return len(waypoints), nil
}

func (uc *DetectorService) SetLights(ctx context.Context, lights []datastructure.TrafficLight) error {
	uc.pipeline.UpdateLights(lights)
	return nil
}

// ProcessFrame runs one pipeline pass for a camera frame and returns the stop
// waypoint to publish for it. A missing image is degenerate, not an error:
// the pipeline reports "no stop" for that frame.
func (uc *DetectorService) ProcessFrame(ctx context.Context, image []byte) int {
	return uc.pipeline.ProcessFrame(ctx, image)
}

func (uc *DetectorService) StopWaypoint(ctx context.Context) int {
	return uc.pipeline.StopWaypoint()
}

func (uc *DetectorService) CaptureStats(ctx context.Context) (capture.Stats, error) {
	if uc.capture == nil {
		return capture.Stats{}, server.WrapErrorf(nil, server.ErrNotFound, "dataset capture is disabled")
	}
	return uc.capture.Stats(), nil
}
