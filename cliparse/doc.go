// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3424)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "postgres" or "sqlite" (default: sqlite)
  - SessionSecret: Secret for dashboard session tokens (required)
  - SessionTTLMinutes: Session lifetime (default: 720)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-session-secret Session signing secret
	-session-ttl    Session lifetime in minutes

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	SESSION_SECRET      → -session-secret
	SESSION_TTL_MINUTES → -session-ttl

CLI flags take precedence over environment variables. main loads a
local .env file (via godotenv) before parsing, so development secrets
can live there.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - SESSION_SECRET must be provided
*/
package cliparse
