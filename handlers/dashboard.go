// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sync"

	"github.com/danielhkuo/sevis-watch/cliparse"
	"github.com/danielhkuo/sevis-watch/middleware"
	"github.com/danielhkuo/sevis-watch/models"
)

type DashboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDashboardHandler(db *sql.DB, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{db: db, cfg: cfg}
}

// Stats handles GET /dashboard/stats
// Headline counts. A store failure degrades to zeros so the dashboard
// header always renders.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := ComputeStats(h.db)
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		stats = models.StatsResponse{}
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Metric handles GET /dashboard/metrics/{metric}
// Looks the metric up in the registry and returns its distribution.
// Unknown metric names are 404; store failures degrade to the metric's
// default so one broken chart never breaks the page.
func (h *DashboardHandler) Metric(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("metric")
	metric, ok := Metrics[name]
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown metric")
		return
	}

	entries, err := ComputeMetric(h.db, metric)
	if err != nil {
		slog.Error("failed to compute metric", "metric", name, "error", err)
		entries = MetricDefault(metric)
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}

// Timeline handles GET /dashboard/timeline
func (h *DashboardHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := ComputeTimeline(h.db)
	if err != nil {
		slog.Error("failed to compute timeline", "error", err)
		timeline = []models.TimelinePoint{}
	}
	middleware.JSONResponse(w, http.StatusOK, timeline)
}

// Summary handles GET /dashboard/summary
// Fires every aggregation concurrently and awaits them all - the queries
// are read-only and independent, so ordering between them is irrelevant
// and one slow or failed metric never blocks the rest.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary := models.DashboardSummary{
		Timeline: []models.TimelinePoint{},
		Metrics:  make(map[string][]models.NamedCount, len(Metrics)),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		stats, err := ComputeStats(h.db)
		if err != nil {
			slog.Error("failed to compute stats", "error", err)
			stats = models.StatsResponse{}
		}
		mu.Lock()
		summary.Stats = stats
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		timeline, err := ComputeTimeline(h.db)
		if err != nil {
			slog.Error("failed to compute timeline", "error", err)
			timeline = []models.TimelinePoint{}
		}
		mu.Lock()
		summary.Timeline = timeline
		mu.Unlock()
	}()

	for name, metric := range Metrics {
		wg.Add(1)
		go func(name string, metric Metric) {
			defer wg.Done()
			entries, err := ComputeMetric(h.db, metric)
			if err != nil {
				slog.Error("failed to compute metric", "metric", name, "error", err)
				entries = MetricDefault(metric)
			}
			mu.Lock()
			summary.Metrics[name] = entries
			mu.Unlock()
		}(name, metric)
	}

	wg.Wait()
	middleware.JSONResponse(w, http.StatusOK, summary)
}
