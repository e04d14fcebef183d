// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/sevis-watch/auth"
	"github.com/danielhkuo/sevis-watch/models"
	"github.com/danielhkuo/sevis-watch/testutil"
)

func TestCheckSubmission(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewSubmissionHandler(db, cfg)

	testutil.InsertTestSubmission(t, db, testutil.Submission{Email: "existing@test.edu"})

	tests := []struct {
		name           string
		email          string
		expectedStatus int
		wantExists     bool
	}{
		{"existing submission", "existing@test.edu", http.StatusOK, true},
		{"case and whitespace normalized", "  EXISTING@test.edu ", http.StatusOK, true},
		{"no submission", "newcomer@test.edu", http.StatusOK, false},
		{"missing email", "", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/submissions/check",
				models.CheckSubmissionRequest{Email: tt.email}, nil)
			w := httptest.NewRecorder()

			handler.Check(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.CheckSubmissionResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Exists != tt.wantExists {
				t.Errorf("Expected exists=%v, got %v", tt.wantExists, resp.Exists)
			}

			// Fingerprint comes back shortened, never the full token
			if !strings.Contains(resp.Fingerprint, "...") {
				t.Errorf("Expected shortened fingerprint, got %q", resp.Fingerprint)
			}
			if strings.Contains(resp.Fingerprint, "@") {
				t.Errorf("Fingerprint %q leaks the email", resp.Fingerprint)
			}
		})
	}
}

func TestCheckSubmission_StoreFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewSubmissionHandler(db, cfg)

	// Simulate a store outage
	db.Close()

	req := testutil.MakeRequest("POST", "/submissions/check",
		models.CheckSubmissionRequest{Email: "anyone@test.edu"}, nil)
	w := httptest.NewRecorder()

	handler.Check(w, req)

	// Must be an error, never a silent "no existing submission"
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}

func submitRequest(email string, overwrite bool) models.SubmitRequest {
	date := "2025-03-05"
	return models.SubmitRequest{
		Email:                email,
		University:           "Test University",
		SevisTerminated:      models.AnswerYes,
		SevisTerminationDate: &date,
		VisaRevoked:          models.AnswerNo,
		StatusAtIncident:     "F-1 Student",
		AcademicLevel:        "PhD",
		TerminationReason:    []string{"reason-unclear"},
		ImmediatePlans:       []string{"reinstatement", "litigation"},
		ConsentToShare:       true,
		Overwrite:            overwrite,
	}
}

func TestSubmit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewSubmissionHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/submissions", submitRequest("first@test.edu", false), nil)
	w := httptest.NewRecorder()

	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.SubmissionID == "" {
		t.Error("Expected submission_id in response")
	}

	if got := testutil.CountRowsForEmail(t, db, "first@test.edu"); got != 1 {
		t.Errorf("Expected 1 row after submit, got %d", got)
	}
}

func TestSubmit_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewSubmissionHandler(db, cfg)

	tests := []struct {
		name   string
		mutate func(*models.SubmitRequest)
	}{
		{"missing email", func(r *models.SubmitRequest) { r.Email = "" }},
		{"missing university", func(r *models.SubmitRequest) { r.University = "" }},
		{"missing status", func(r *models.SubmitRequest) { r.StatusAtIncident = "" }},
		{"missing sevis answer", func(r *models.SubmitRequest) { r.SevisTerminated = "" }},
		{"missing visa answer", func(r *models.SubmitRequest) { r.VisaRevoked = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := submitRequest("valid@test.edu", false)
			tt.mutate(&body)

			req := testutil.MakeRequest("POST", "/submissions", body, nil)
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestSubmit_OverwriteLeavesOneRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewSubmissionHandler(db, cfg)

	// First submission
	req := testutil.MakeRequest("POST", "/submissions", submitRequest("repeat@test.edu", false), nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Resubmission with overwrite replaces rather than duplicates
	body := submitRequest("repeat@test.edu", true)
	body.University = "Another University"
	req = testutil.MakeRequest("POST", "/submissions", body, nil)
	w = httptest.NewRecorder()
	handler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	if got := testutil.CountRowsForEmail(t, db, "repeat@test.edu"); got != 1 {
		t.Errorf("Expected exactly 1 row after overwrite, got %d", got)
	}

	// The surviving row is the replacement
	var university string
	err := db.QueryRow(`
		SELECT university FROM submissions WHERE identity_fingerprint = $1
	`, auth.Fingerprint("repeat@test.edu")).Scan(&university)
	if err != nil {
		t.Fatalf("Failed to read surviving row: %v", err)
	}
	if university != "Another University" {
		t.Errorf("Expected replacement row to survive, got university %q", university)
	}
}

func TestSubmit_WithoutOverwriteDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewSubmissionHandler(db, cfg)

	// Two direct inserts for the same identity: the store does not
	// enforce uniqueness, so both land (the accepted benign race)
	for i := 0; i < 2; i++ {
		req := testutil.MakeRequest("POST", "/submissions", submitRequest("dup@test.edu", false), nil)
		w := httptest.NewRecorder()
		handler.Submit(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	if got := testutil.CountRowsForEmail(t, db, "dup@test.edu"); got != 2 {
		t.Errorf("Expected 2 rows without overwrite, got %d", got)
	}
}

func TestSubmit_OtherUniversity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewSubmissionHandler(db, cfg)

	body := submitRequest("other-uni@test.edu", false)
	body.University = "Other"
	body.OtherUniversity = "Small Liberal Arts College"

	req := testutil.MakeRequest("POST", "/submissions", body, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var university string
	err := db.QueryRow(`
		SELECT university FROM submissions WHERE identity_fingerprint = $1
	`, auth.Fingerprint("other-uni@test.edu")).Scan(&university)
	if err != nil {
		t.Fatalf("Failed to read row: %v", err)
	}
	if university != "Small Liberal Arts College" {
		t.Errorf("Expected free-text university, got %q", university)
	}
}
