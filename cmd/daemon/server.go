package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newRouter(r *runner, registry *prometheus.Registry) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	router.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		lastRun, lastErr := r.Status()
		status := map[string]interface{}{"status": "ok"}
		if !lastRun.IsZero() {
			status["lastRun"] = lastRun.UTC().Format(time.RFC3339)
		}
		if lastErr != nil {
			status["lastError"] = lastErr.Error()
		}
		writeJSON(w, http.StatusOK, status)
	})

	router.Route("/api/v1", func(api chi.Router) {
		api.Get("/clusters", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, r.Reports())
		})
		api.Get("/clusters/{cluster}", func(w http.ResponseWriter, req *http.Request) {
			cluster := chi.URLParam(req, "cluster")
			report, ok := r.Report(cluster)
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "no report for cluster " + cluster})
				return
			}
			writeJSON(w, http.StatusOK, report)
		})
	})

	return router
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
