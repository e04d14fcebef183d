// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/sevis-watch/testutil"
)

// TestConcurrentSubmissions verifies that simultaneous submissions from
// different respondents don't interact: each identity's guarded write is
// scoped to its own fingerprint
func TestConcurrentSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewSubmissionHandler(db, cfg)

	numRespondents := 10

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRespondents; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			email := fmt.Sprintf("respondent%d@test.edu", idx)
			req := testutil.MakeRequest("POST", "/submissions", submitRequest(email, false), nil)
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numRespondents {
		t.Errorf("Expected %d successful submissions, got %d", numRespondents, successCount.Load())
	}

	// Exactly one row per identity
	for i := 0; i < numRespondents; i++ {
		email := fmt.Sprintf("respondent%d@test.edu", i)
		if got := testutil.CountRowsForEmail(t, db, email); got != 1 {
			t.Errorf("Expected 1 row for %s, got %d", email, got)
		}
	}
}

// TestConcurrentAggregationReads fires every metric repeatedly from
// multiple goroutines; reads are independent and must not interfere
func TestConcurrentAggregationReads(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDashboardHandler(db, cfg)

	for i := 0; i < 5; i++ {
		testutil.InsertTestSubmission(t, db, testutil.Submission{
			Email: fmt.Sprintf("seed%d@test.edu", i),
		})
	}

	var wg sync.WaitGroup
	var failures atomic.Int32

	for name := range Metrics {
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func(metric string) {
				defer wg.Done()

				req := httptest.NewRequest("GET", "/dashboard/metrics/"+metric, nil)
				req.SetPathValue("metric", metric)
				w := httptest.NewRecorder()

				handler.Metric(w, req)

				if w.Code != http.StatusOK {
					failures.Add(1)
				}
			}(name)
		}
	}

	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("%d concurrent metric reads failed", failures.Load())
	}
}
