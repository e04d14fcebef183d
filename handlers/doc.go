// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the SEVIS Watch API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SubmissionHandler: Duplicate check and the guarded submission write
  - AccessHandler: Dashboard gate (fingerprint verification, session token)
  - DashboardHandler: Aggregate distributions for charts

Handlers are created via constructor functions that accept *sql.DB and Config:

	submissions := handlers.NewSubmissionHandler(db, cfg)

# Submission Flow

The form calls the duplicate check first, then the guarded write:

	POST /submissions/check → Check (exists + shortened fingerprint)
	POST /submissions       → Submit (overwrite flag controls replace)

With overwrite set, existing rows for the fingerprint are deleted before
the insert, so a respondent who resubmits ends up with exactly one row.
The check-then-act race between duplicate tabs is a known, accepted gap.

# Dashboard Flow

Dashboard access is gated on prior participation:

	POST /dashboard/verify → Verify (existence check → session token)

All reads then require the Bearer token:

	GET /dashboard/stats            → Stats
	GET /dashboard/timeline         → Timeline
	GET /dashboard/metrics/{metric} → Metric
	GET /dashboard/summary          → Summary (all metrics, concurrently)

# Aggregation Engine

The family of distribution queries lives in aggregate.go:

	entries, err := handlers.ComputeMetric(db, handlers.Metrics["universities"])

Metrics come in three shapes: open categorical columns (observed values
only), fixed-category columns (closed label set pre-seeded at zero), and
multi-valued JSON array columns (flattened across rows, ids mapped to
readable labels). The timeline buckets the two incident date columns by
calendar month and sorts on the parsed date. Every metric degrades
independently to a documented default when the store fails.
*/
package handlers
