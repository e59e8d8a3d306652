package main

import (
	"flag"
	"log"
	"net/http"

	_ "lintang/lightwatch/docs"
	"lintang/lightwatch/pkg/capture"
	"lintang/lightwatch/pkg/config"
	"lintang/lightwatch/pkg/detector"
	"lintang/lightwatch/pkg/server/rest"
	"lintang/lightwatch/pkg/server/rest/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "net/http/pprof"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr     = flag.String("listenaddr", ":5000", "server listen address")
	configFile     = flag.String("config", "traffic_light_config.yaml", "stop line positions + detector thresholds yaml")
	captureDir     = flag.String("capturedir", "", "pebble dir for ground truth dataset capture, empty disables capture")
	useGroundTruth = flag.Bool("groundtruth", true, "classify from the reported light states (simulator mode) instead of a pixel classifier")
)

//	@title			lightwatch API
//	@version		1.0
//	@description	traffic light stop waypoint detector

//	@contact.name	lintang birda saputra
//	@description 	tracks the vehicle pose against known traffic lights and publishes the route waypoint index to stop at for an upcoming red light, debounced over consecutive camera frames

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}

	var captureStore *capture.Store
	var captureObserver detector.CaptureObserver
	if *captureDir != "" {
		db, err := pebble.Open(*captureDir, &pebble.Options{})
		if err != nil {
			log.Fatal(err)
		}
		captureStore = capture.NewStore(db)
		captureObserver = captureStore
		defer captureStore.Close()
	}

	var classifier detector.Classifier
	if !*useGroundTruth {
		// no pixel classifier ships with the node yet; a model wraps the
		// detector.Classifier interface and gets wired here
		log.Fatal("no pixel classifier available, run with -groundtruth")
	}

	selector := detector.NewLightSelector(cfg.MinLightDistance, cfg.MaxLightDistance, cfg.ConeHalfAngleRad())
	locator := detector.NewStopLineLocator(cfg.StopLines())
	pipeline := detector.NewPipeline(selector, locator, classifier, captureObserver, cfg.StateCountThreshold)

	var captureStats service.CaptureStats
	if captureStore != nil {
		captureStats = captureStore
	}
	detectorSvc := service.NewDetectorService(pipeline, captureStats)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"), //The url pointing to API definition
	))

	rest.DetectorRouter(r, detectorSvc, m)

	log.Printf("lightwatch detector listening at %s (%d stop lines loaded)", *listenAddr, len(cfg.StopLines()))
	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
