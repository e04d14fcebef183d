// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema avoids driver-specific types so it runs unchanged on both
// Postgres and SQLite: dates are ISO-8601 TEXT, multi-valued answers are
// JSON-encoded TEXT arrays, timestamps default to CURRENT_TIMESTAMP.
const schema = `
-- Survey submissions, one row per respondent, keyed by email fingerprint
CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    identity_fingerprint TEXT NOT NULL,
    university TEXT NOT NULL,
    status_at_incident TEXT NOT NULL,
    sevis_terminated TEXT NOT NULL,
    sevis_termination_date TEXT,
    sevis_notification_method TEXT,
    visa_revoked TEXT NOT NULL,
    visa_revocation_date TEXT,
    academic_level TEXT,
    termination_reason TEXT,
    termination_reason_other TEXT,
    linked_to_law_enforcement TEXT,
    incident_type TEXT,
    was_arrested TEXT,
    was_fingerprinted TEXT,
    legal_case_status TEXT,
    h1b_status TEXT,
    legal_consultation TEXT,
    immediate_plans TEXT,
    consent_to_share BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Fingerprint lookups back the duplicate check and the dashboard gate.
-- Not UNIQUE: the guarded write path owns dedup, and the check-then-act
-- race between duplicate tabs is accepted.
CREATE INDEX IF NOT EXISTS idx_submissions_fingerprint ON submissions(identity_fingerprint);
`
