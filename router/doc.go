// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the SEVIS Watch API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Public:

	GET  /health
	GET  /
	POST /submissions/check
	POST /submissions
	POST /dashboard/verify

Session-gated (Authorization: Bearer token from /dashboard/verify):

	GET /dashboard/stats
	GET /dashboard/timeline
	GET /dashboard/summary
	GET /dashboard/metrics/{metric}

Metric names are the keys of handlers.Metrics (universities, statuses,
academic-levels, termination-reasons, immediate-plans, law-enforcement,
legal-consultation, arrests, fingerprinting, h1b-statuses,
legal-case-statuses, incident-types, notification-methods).

All routes use Go 1.22+ method+pattern routing and are wrapped in the
request logging middleware.
*/
package router
