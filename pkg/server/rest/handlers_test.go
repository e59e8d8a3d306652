package rest_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lintang/lightwatch/pkg/capture"
	"lintang/lightwatch/pkg/datastructure"
	"lintang/lightwatch/pkg/server"
	"lintang/lightwatch/pkg/server/rest"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	pose      *datastructure.Pose
	routeLen  int
	lights    []datastructure.TrafficLight
	frames    int
	stop      int
	statsErr  error
	stats     capture.Stats
	lastImage []byte
}

func (f *fakeService) SetPose(ctx context.Context, pose datastructure.Pose) error {
	f.pose = &pose
	return nil
}

func (f *fakeService) SetRoute(ctx context.Context, coords [][]float64) (int, error) {
	if len(coords) == 0 {
		return 0, server.WrapErrorf(nil, server.ErrBadParamInput, "invalid route waypoints")
	}
	f.routeLen = len(coords)
	return len(coords), nil
}

func (f *fakeService) SetRouteFromPolyline(ctx context.Context, encoded string) (int, error) {
	f.routeLen = 2
	return 2, nil
}

func (f *fakeService) SetLights(ctx context.Context, lights []datastructure.TrafficLight) error {
	f.lights = lights
	return nil
}

func (f *fakeService) ProcessFrame(ctx context.Context, image []byte) int {
	f.frames++
	f.lastImage = image
	return f.stop
}

func (f *fakeService) StopWaypoint(ctx context.Context) int {
	return f.stop
}

func (f *fakeService) CaptureStats(ctx context.Context) (capture.Stats, error) {
	return f.stats, f.statsErr
}

func newTestRouter(svc rest.DetectorService) *chi.Mux {
	r := chi.NewRouter()
	m := rest.NewMetrics(prometheus.NewRegistry())
	rest.DetectorRouter(r, svc, m)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPoseEndpoint(t *testing.T) {
	t.Run("valid pose updates the cache", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)

		w := postJSON(t, r, "/api/detector/pose", `{"position":{"x":1,"y":2},"orientation":{"z":0,"w":1}}`)
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.pose)
		assert.Equal(t, 1.0, svc.pose.Position.X)
	})

	t.Run("zero quaternion is rejected", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)

		w := postJSON(t, r, "/api/detector/pose", `{"position":{"x":1,"y":2},"orientation":{}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, svc.pose)
	})
}

func TestWaypointsEndpoint(t *testing.T) {
	t.Run("explicit waypoint list", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)

		w := postJSON(t, r, "/api/detector/waypoints", `{"waypoints":[[0,0],[10,0],[20,0]]}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, svc.routeLen)

		var resp struct {
			WaypointsLoaded int `json:"waypoints_loaded"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.WaypointsLoaded)
	})

	t.Run("missing both forms is rejected", func(t *testing.T) {
		r := newTestRouter(&fakeService{})
		w := postJSON(t, r, "/api/detector/waypoints", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("both forms at once is rejected", func(t *testing.T) {
		r := newTestRouter(&fakeService{})
		w := postJSON(t, r, "/api/detector/waypoints", `{"waypoints":[[0,0]],"polyline":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("one element waypoint fails validation", func(t *testing.T) {
		r := newTestRouter(&fakeService{})
		w := postJSON(t, r, "/api/detector/waypoints", `{"waypoints":[[5]]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLightsEndpoint(t *testing.T) {
	t.Run("light set replacement with states", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)

		w := postJSON(t, r, "/api/detector/lights", `{"lights":[{"x":100,"y":0,"state":"red"},{"x":400,"y":0,"state":"green"}]}`)
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, svc.lights, 2)
		assert.Equal(t, datastructure.StateRed, svc.lights[0].State)
		assert.Equal(t, datastructure.StateGreen, svc.lights[1].State)
	})

	t.Run("unknown color name fails validation", func(t *testing.T) {
		r := newTestRouter(&fakeService{})
		w := postJSON(t, r, "/api/detector/lights", `{"lights":[{"x":1,"y":2,"state":"purple"}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("omitted state defaults to unknown", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)
		w := postJSON(t, r, "/api/detector/lights", `{"lights":[{"x":1,"y":2}]}`)
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, svc.lights, 1)
		assert.Equal(t, datastructure.StateUnknown, svc.lights[0].State)
	})
}

func TestFrameEndpoint(t *testing.T) {
	t.Run("frame is decoded and processed", func(t *testing.T) {
		svc := &fakeService{stop: 42}
		r := newTestRouter(svc)

		img := base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))
		w := postJSON(t, r, "/api/detector/frame", fmt.Sprintf(`{"image":%q}`, img))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.frames)
		assert.Equal(t, []byte("jpeg bytes"), svc.lastImage)

		var resp struct {
			StopWaypoint int `json:"stop_waypoint"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 42, resp.StopWaypoint)
	})

	t.Run("invalid base64 is rejected", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)
		w := postJSON(t, r, "/api/detector/frame", `{"image":"%%%not-base64%%%"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, svc.frames)
	})

	t.Run("empty image is still a frame", func(t *testing.T) {
		svc := &fakeService{stop: -1}
		r := newTestRouter(svc)
		w := postJSON(t, r, "/api/detector/frame", `{"image":""}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.frames)
	})
}

func TestStopWaypointEndpoint(t *testing.T) {
	svc := &fakeService{stop: 7}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/detector/stop-waypoint", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		StopWaypoint int `json:"stop_waypoint"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.StopWaypoint)
}

func TestCaptureStatsEndpoint(t *testing.T) {
	t.Run("stats are served", func(t *testing.T) {
		svc := &fakeService{stats: capture.Stats{Red: 2, Green: 1, Total: 3}}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/detector/capture/stats", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp capture.Stats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint64(3), resp.Total)
	})

	t.Run("disabled capture maps to 404", func(t *testing.T) {
		svc := &fakeService{statsErr: server.WrapErrorf(nil, server.ErrNotFound, "dataset capture is disabled")}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/detector/capture/stats", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
