package rest

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"lintang/lightwatch/pkg/capture"
	"lintang/lightwatch/pkg/datastructure"
	"lintang/lightwatch/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type DetectorService interface {
	SetPose(ctx context.Context, pose datastructure.Pose) error
	SetRoute(ctx context.Context, coords [][]float64) (int, error)
	SetRouteFromPolyline(ctx context.Context, encoded string) (int, error)
	SetLights(ctx context.Context, lights []datastructure.TrafficLight) error
	ProcessFrame(ctx context.Context, image []byte) int
	StopWaypoint(ctx context.Context) int
	CaptureStats(ctx context.Context) (capture.Stats, error)
}

type DetectorHandler struct {
	svc          DetectorService
	promeMetrics *metrics
}

func DetectorRouter(r *chi.Mux, svc DetectorService, m *metrics) {
	handler := &DetectorHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/detector", func(r chi.Router) {
			r.Post("/pose", handler.setPose)
			r.Post("/waypoints", handler.setWaypoints)
			r.Post("/lights", handler.setLights)
			r.Post("/frame", handler.processFrame)
			r.Get("/stop-waypoint", handler.stopWaypoint)
			r.Get("/capture/stats", handler.captureStats)
		})
	})
}

// PoseRequest model info
//
//	@Description	latest localization sample: map position plus orientation quaternion
type PoseRequest struct {
	Position struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"position"`
	Orientation struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
		W float64 `json:"w"`
	} `json:"orientation"`
}

func (p *PoseRequest) Bind(r *http.Request) error {
	// the origin with identity orientation is a legal pose, an all zero
	// quaternion is not
	if p.Orientation.X == 0 && p.Orientation.Y == 0 && p.Orientation.Z == 0 && p.Orientation.W == 0 {
		return errors.New("orientation quaternion must not be zero")
	}
	return nil
}

// WaypointsRequest model info
//
//	@Description	the planned route, replacing any previous one wholesale. Either an explicit [x, y] list or an encoded polyline.
type WaypointsRequest struct {
	Waypoints [][]float64 `json:"waypoints,omitempty" validate:"omitempty,min=1,dive,min=2,max=3"`
	Polyline  string      `json:"polyline,omitempty"`
}

func (wr *WaypointsRequest) Bind(r *http.Request) error {
	if len(wr.Waypoints) == 0 && wr.Polyline == "" {
		return errors.New("either waypoints or polyline is required")
	}
	if len(wr.Waypoints) != 0 && wr.Polyline != "" {
		return errors.New("waypoints and polyline are mutually exclusive")
	}
	return nil
}

// LightsRequest model info
//
//	@Description	full replacement of the tracked traffic light set with reported states
type LightsRequest struct {
	Lights []LightReq `json:"lights" validate:"dive"`
}

// LightReq model info
//
//	@Description	one known light: position plus ground truth or last known state
type LightReq struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	State string  `json:"state" validate:"omitempty,oneof=red yellow green unknown"`
}

func (l *LightsRequest) Bind(r *http.Request) error {
	return nil
}

// FrameRequest model info
//
//	@Description	one camera frame, image bytes base64 encoded
type FrameRequest struct {
	Image string `json:"image"`
}

func (f *FrameRequest) Bind(r *http.Request) error {
	return nil
}

// RouteLoadedResponse model info
//
//	@Description	acknowledgement of a route replacement
type RouteLoadedResponse struct {
	WaypointsLoaded int `json:"waypoints_loaded"`
}

// StopWaypointResponse model info
//
//	@Description	the published stop decision: route waypoint index to stop at for a red light, -1 when no stop is required
type StopWaypointResponse struct {
	StopWaypoint int `json:"stop_waypoint"`
}

// AckResponse model info
//
//	@Description	plain acknowledgement for cache updates
type AckResponse struct {
	Status string `json:"status"`
}

func ackOK() *AckResponse {
	return &AckResponse{Status: "ok"}
}

// setPose
//
//	@Summary		replace the cached vehicle pose.
//	@Description	replace the cached vehicle pose with the latest localization sample. Last writer wins, no history is kept.
//	@Tags			detector
//	@Param			body	body	PoseRequest	true	"latest pose"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/detector/pose [post]
//	@Success		200	{object}	AckResponse
//	@Failure		400	{object}	ErrResponse
func (h *DetectorHandler) setPose(w http.ResponseWriter, r *http.Request) {
	data := &PoseRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	pose := datastructure.Pose{
		Position: datastructure.Point{X: data.Position.X, Y: data.Position.Y, Z: data.Position.Z},
		Orientation: datastructure.Quaternion{
			X: data.Orientation.X, Y: data.Orientation.Y,
			Z: data.Orientation.Z, W: data.Orientation.W,
		},
	}
	if err := h.svc.SetPose(r.Context(), pose); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ackOK())
}

// setWaypoints
//
//	@Summary		replace the route waypoint list.
//	@Description	replace the route waypoint list wholesale and rebuild the stop line index. Accepts an explicit list or an encoded polyline.
//	@Tags			detector
//	@Param			body	body	WaypointsRequest	true	"route waypoints"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/detector/waypoints [post]
//	@Success		200	{object}	RouteLoadedResponse
//	@Failure		400	{object}	ErrResponse
func (h *DetectorHandler) setWaypoints(w http.ResponseWriter, r *http.Request) {
	data := &WaypointsRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	var (
		loaded int
		err    error
	)
	if data.Polyline != "" {
		loaded, err = h.svc.SetRouteFromPolyline(r.Context(), data.Polyline)
	} else {
		loaded, err = h.svc.SetRoute(r.Context(), data.Waypoints)
	}
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &RouteLoadedResponse{WaypointsLoaded: loaded})
}

// setLights
//
//	@Summary		replace the tracked traffic light set.
//	@Description	replace the tracked traffic light set wholesale. No per light identity survives across updates.
//	@Tags			detector
//	@Param			body	body	LightsRequest	true	"known lights with reported states"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/detector/lights [post]
//	@Success		200	{object}	AckResponse
//	@Failure		400	{object}	ErrResponse
func (h *DetectorHandler) setLights(w http.ResponseWriter, r *http.Request) {
	data := &LightsRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	lights := make([]datastructure.TrafficLight, len(data.Lights))
	for i, l := range data.Lights {
		lights[i] = datastructure.TrafficLight{
			Position: datastructure.NewPoint(l.X, l.Y),
			State:    datastructure.ParseLightState(l.State),
		}
	}
	if err := h.svc.SetLights(r.Context(), lights); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ackOK())
}

// processFrame
//
//	@Summary		process one camera frame.
//	@Description	run one pipeline pass for the frame and return the debounced stop waypoint. Published at the incoming frame rate.
//	@Tags			detector
//	@Param			body	body	FrameRequest	true	"camera frame, base64 image"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/detector/frame [post]
//	@Success		200	{object}	StopWaypointResponse
//	@Failure		400	{object}	ErrResponse
func (h *DetectorHandler) processFrame(w http.ResponseWriter, r *http.Request) {
	data := &FrameRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	image, err := base64.StdEncoding.DecodeString(data.Image)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("image is not valid base64: %w", err)))
		return
	}

	stopWaypoint := h.svc.ProcessFrame(r.Context(), image)
	h.promeMetrics.FrameCount.WithLabelValues(fmt.Sprintf("%t", stopWaypoint != datastructure.NoStopWaypoint)).Inc()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &StopWaypointResponse{StopWaypoint: stopWaypoint})
}

// stopWaypoint
//
//	@Summary		read the last committed stop waypoint.
//	@Description	read the last committed stop waypoint without processing a frame.
//	@Tags			detector
//	@Produce		application/json
//	@Router			/detector/stop-waypoint [get]
//	@Success		200	{object}	StopWaypointResponse
func (h *DetectorHandler) stopWaypoint(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &StopWaypointResponse{StopWaypoint: h.svc.StopWaypoint(r.Context())})
}

// captureStats
//
//	@Summary		dataset capture counters.
//	@Description	per color counts of captured ground truth samples.
//	@Tags			detector
//	@Produce		application/json
//	@Router			/detector/capture/stats [get]
//	@Success		200	{object}	capture.Stats
//	@Failure		404	{object}	ErrResponse
func (h *DetectorHandler) captureStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.CaptureStats(r.Context())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, stats)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}

// ErrResponse model info
//
//	@Description	model for error responses
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 422,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	switch getStatusCode(err) {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusConflict:
		statusText = "Resource conflict."
	case http.StatusBadRequest:
		statusText = "Bad request."
	default:
		statusText = "Error."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: getStatusCode(err),
		StatusText:     statusText,
		ErrorText:      err.Error(),
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case server.ErrInternalServerError:
		return http.StatusInternalServerError
	case server.ErrNotFound:
		return http.StatusNotFound
	case server.ErrConflict:
		return http.StatusConflict
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
