// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/sevis-watch/cliparse"
	"github.com/danielhkuo/sevis-watch/handlers"
	"github.com/danielhkuo/sevis-watch/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(db, cfg)
	accessHandler := handlers.NewAccessHandler(db, cfg)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)

	// Session gate for dashboard reads
	gated := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(next, cfg.SessionSecret))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Submission operations (public)
	mux.HandleFunc("POST /submissions/check", middleware.WithLogging(submissionHandler.Check))
	mux.HandleFunc("POST /submissions", middleware.WithLogging(submissionHandler.Submit))

	// Dashboard gate (public: trades an existence check for a session token)
	mux.HandleFunc("POST /dashboard/verify", middleware.WithLogging(accessHandler.Verify))

	// Aggregate reads (require a session token)
	mux.HandleFunc("GET /dashboard/stats", gated(dashboardHandler.Stats))
	mux.HandleFunc("GET /dashboard/timeline", gated(dashboardHandler.Timeline))
	mux.HandleFunc("GET /dashboard/summary", gated(dashboardHandler.Summary))
	mux.HandleFunc("GET /dashboard/metrics/{metric}", gated(dashboardHandler.Metric))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("sevis-watch API v1"))
	})

	return mux
}
