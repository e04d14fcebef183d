// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes the submissions table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.

# Tables

A single table holds everything:

  - submissions: one row per respondent, keyed by identity_fingerprint

The fingerprint is a SHA-256 hash of the normalized email (see package
auth); the raw email is never stored. Rows are only created through the
guarded write path in handlers, and only ever replaced wholesale
(delete + reinsert) - never updated in place.

# Column Conventions

The schema is portable across Postgres and SQLite:

  - date answers (sevis_termination_date, visa_revocation_date) are
    nullable ISO-8601 TEXT ("2006-01-02")
  - multi-valued answers (termination_reason, immediate_plans) are
    nullable JSON-encoded TEXT arrays
  - queries use ascending $1..$n placeholders, which both drivers bind
    positionally

# Indexes

  - submissions.identity_fingerprint (non-unique; dedup is enforced by
    the guarded write, not the schema)
*/
package db
