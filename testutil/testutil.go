// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/sevis-watch/auth"
	"github.com/danielhkuo/sevis-watch/cliparse"
	"github.com/danielhkuo/sevis-watch/db"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// One connection max: each SQLite :memory: connection is its own database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3424,
		DatabaseURL:       ":memory:",
		DatabaseType:      "sqlite",
		SessionSecret:     "test-session-secret",
		SessionTTLMinutes: 60,
	}
}

// Submission is the adjustable shape for seeding test rows. Zero-value
// fields fall back to sensible defaults in InsertTestSubmission.
type Submission struct {
	Email                   string
	University              string
	StatusAtIncident        string
	SevisTerminated         string
	SevisTerminationDate    *string
	SevisNotificationMethod string
	VisaRevoked             string
	VisaRevocationDate      *string
	AcademicLevel           string
	TerminationReason       []string
	LinkedToLawEnforcement  string
	IncidentType            string
	WasArrested             string
	WasFingerprinted        string
	LegalCaseStatus         string
	H1BStatus               string
	LegalConsultation       string
	ImmediatePlans          []string
}

// InsertTestSubmission seeds one submission row and returns its ID.
func InsertTestSubmission(t *testing.T, conn *sql.DB, s Submission) string {
	t.Helper()

	if s.Email == "" {
		s.Email = "student@test.edu"
	}
	if s.University == "" {
		s.University = "Test University"
	}
	if s.StatusAtIncident == "" {
		s.StatusAtIncident = "F-1 Student"
	}
	if s.SevisTerminated == "" {
		s.SevisTerminated = "Yes"
	}
	if s.VisaRevoked == "" {
		s.VisaRevoked = "No"
	}

	id, _ := auth.GenerateID(16)
	fingerprint := auth.Fingerprint(s.Email)

	_, err := conn.Exec(`
		INSERT INTO submissions (
			id, identity_fingerprint, university, status_at_incident,
			sevis_terminated, sevis_termination_date, sevis_notification_method,
			visa_revoked, visa_revocation_date, academic_level,
			termination_reason, linked_to_law_enforcement, incident_type,
			was_arrested, was_fingerprinted, legal_case_status, h1b_status,
			legal_consultation, immediate_plans, consent_to_share, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`,
		id, fingerprint, s.University, s.StatusAtIncident,
		s.SevisTerminated, nullable(s.SevisTerminationDate), emptyNull(s.SevisNotificationMethod),
		s.VisaRevoked, nullable(s.VisaRevocationDate), emptyNull(s.AcademicLevel),
		jsonOrNull(t, s.TerminationReason), emptyNull(s.LinkedToLawEnforcement), emptyNull(s.IncidentType),
		emptyNull(s.WasArrested), emptyNull(s.WasFingerprinted), emptyNull(s.LegalCaseStatus), emptyNull(s.H1BStatus),
		emptyNull(s.LegalConsultation), jsonOrNull(t, s.ImmediatePlans), true, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("Failed to insert test submission: %v", err)
	}

	return id
}

// CountRowsForEmail returns how many submission rows exist for an email's
// fingerprint.
func CountRowsForEmail(t *testing.T, conn *sql.DB, email string) int {
	t.Helper()

	var count int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM submissions WHERE identity_fingerprint = $1
	`, auth.Fingerprint(email)).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

func nullable(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func emptyNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func jsonOrNull(t *testing.T, ids []string) interface{} {
	t.Helper()
	if len(ids) == 0 {
		return nil
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		t.Fatalf("Failed to encode test array: %v", err)
	}
	return string(encoded)
}
