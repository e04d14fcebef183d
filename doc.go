// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the SEVIS Watch API server.

SEVIS Watch is an anonymous survey backend for self-reported visa/SEVIS
status incidents: a public form records one submission per respondent,
keyed by a one-way email fingerprint, and a gated dashboard serves
chart-ready aggregate distributions to prior participants.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SESSION_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3424 -t sqlite -d "file:sevis.db" -session-secret "..."

A local .env file is loaded first if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string
  - SESSION_SECRET (-session-secret): secret for dashboard session tokens

Optional settings:

  - PORT (-p): Server port (default: 3424)
  - DATABASE_TYPE (-t): postgres or sqlite (default: sqlite)
  - SESSION_TTL_MINUTES (-session-ttl): session lifetime (default: 720)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (submissions, access gate, dashboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, session gate, JSON helpers
  - models: Request/response types and label tables
  - auth: Email fingerprinting and session tokens
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
