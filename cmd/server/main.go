package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/asclaudino/data-visualization-project/charts"
	"github.com/asclaudino/data-visualization-project/consts"
	"github.com/asclaudino/data-visualization-project/dataset"
	"github.com/asclaudino/data-visualization-project/metrics"
)

func newLoader() dataset.Loader {
	path := os.Getenv("DATASET_PATH")
	if path == "" {
		path = "data/disasters.csv"
	}
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return dataset.ExcelLoader{Path: path, Sheet: os.Getenv("DATASET_SHEET")}
	}
	return dataset.FileLoader{Path: path}
}

func startTasks(ctx context.Context, store *dataset.Store, m *metrics.Metrics) error {
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(consts.CronGenerateCharts, generateCharts(ctx, store, m))
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err == nil {
		log.Print("Loaded environment from .env")
	}

	store := dataset.NewStore(newLoader())
	m := metrics.New(prometheus.DefaultRegisterer)

	go warmup(ctx, store, m)

	if err := startTasks(ctx, store, m); err != nil {
		log.Fatal(err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)

	// Dev-only routes (static files, unthrottled chart rendering)
	registerDevRoutes(r, store, m)

	// API endpoints (protected by API_KEY if set)
	r.With(apiKeyMiddleware).Get("/api/charts", chartsJSONHandler())
	r.With(apiKeyMiddleware).Get("/api/summary", charts.SummaryHandler(store))

	// Rate-limited server-side render endpoint
	limiter := httprate.NewRateLimiter(consts.RateLimitRequests, consts.RateLimitWindow, httprate.WithKeyByIP())
	r.With(limiter.Handler).Get("/charts", charts.ChartsHandler(store, m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = consts.DefaultPort
	}

	log.Print("Starting Disaster Insights server on :" + port)
	server := &http.Server{
		Addr:              ":" + port,
		ReadHeaderTimeout: consts.ReadHeaderTimeout,
		Handler:           r,
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}
