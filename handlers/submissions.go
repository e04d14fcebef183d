// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/sevis-watch/auth"
	"github.com/danielhkuo/sevis-watch/cliparse"
	"github.com/danielhkuo/sevis-watch/middleware"
	"github.com/danielhkuo/sevis-watch/models"
)

type SubmissionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSubmissionHandler(db *sql.DB, cfg cliparse.Config) *SubmissionHandler {
	return &SubmissionHandler{db: db, cfg: cfg}
}

// fingerprintExists reports whether any submission row carries the given
// fingerprint. Errors propagate so callers can fail closed.
func fingerprintExists(db *sql.DB, fingerprint string) (bool, error) {
	var one int
	err := db.QueryRow(`
		SELECT 1 FROM submissions WHERE identity_fingerprint = $1 LIMIT 1
	`, fingerprint).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	return true, nil
}

// Check handles POST /submissions/check
// Computes the fingerprint for the given email and reports whether a
// submission already exists, so the form can prompt before overwriting.
func (h *SubmissionHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req models.CheckSubmissionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	fingerprint := auth.Fingerprint(req.Email)
	exists, err := fingerprintExists(h.db, fingerprint)
	if err != nil {
		slog.Error("failed to check for existing submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckSubmissionResponse{
		Exists:      exists,
		Fingerprint: auth.ShortenFingerprint(fingerprint, auth.FingerprintDisplayLen),
	})
}

// Submit handles POST /submissions
// The guarded write: with overwrite set, any existing rows for the same
// fingerprint are deleted first, so resubmission leaves exactly one row.
// Without overwrite the insert happens directly - the caller is expected
// to have run the duplicate check already.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.University == "" || req.StatusAtIncident == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "university and status_at_incident are required")
		return
	}
	if req.SevisTerminated == "" || req.VisaRevoked == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sevis_terminated and visa_revoked are required")
		return
	}

	// "Other" routes the free-text school name into the university column
	university := req.University
	if university == "Other" && req.OtherUniversity != "" {
		university = req.OtherUniversity
	}

	fingerprint := auth.Fingerprint(req.Email)

	if req.Overwrite {
		// Full replace: delete then reinsert, never update in place
		if _, err := h.db.Exec(`
			DELETE FROM submissions WHERE identity_fingerprint = $1
		`, fingerprint); err != nil {
			slog.Error("failed to delete existing submission", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to replace submission")
			return
		}
	}

	submissionID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate submission ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store submission")
		return
	}

	terminationReason, err := marshalSet(req.TerminationReason)
	if err != nil {
		slog.Error("failed to encode termination reasons", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store submission")
		return
	}
	immediatePlans, err := marshalSet(req.ImmediatePlans)
	if err != nil {
		slog.Error("failed to encode immediate plans", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store submission")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO submissions (
			id, identity_fingerprint, university, status_at_incident,
			sevis_terminated, sevis_termination_date, sevis_notification_method,
			visa_revoked, visa_revocation_date, academic_level,
			termination_reason, termination_reason_other,
			linked_to_law_enforcement, incident_type, was_arrested,
			was_fingerprinted, legal_case_status, h1b_status,
			legal_consultation, immediate_plans, consent_to_share, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`,
		submissionID, fingerprint, university, req.StatusAtIncident,
		req.SevisTerminated, nullableDate(req.SevisTerminationDate), nullableString(req.SevisNotificationMethod),
		req.VisaRevoked, nullableDate(req.VisaRevocationDate), nullableString(req.AcademicLevel),
		terminationReason, nullableString(req.TerminationReasonOther),
		nullableString(req.LinkedToLawEnforcement), nullableString(req.IncidentType), nullableString(req.WasArrested),
		nullableString(req.WasFingerprinted), nullableString(req.LegalCaseStatus), nullableString(req.H1BStatus),
		nullableString(req.LegalConsultation), immediatePlans, req.ConsentToShare, time.Now().UTC(),
	)
	if err != nil {
		slog.Error("failed to insert submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store submission")
		return
	}

	slog.Info("submission stored",
		"submission_id", submissionID,
		"fingerprint", auth.ShortenFingerprint(fingerprint, auth.FingerprintDisplayLen),
		"overwrite", req.Overwrite,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		SubmissionID: submissionID,
		Fingerprint:  auth.ShortenFingerprint(fingerprint, auth.FingerprintDisplayLen),
		Message:      "Submission recorded",
	})
}

// marshalSet encodes a multi-valued answer as a JSON array, or NULL when
// the respondent selected nothing.
func marshalSet(ids []string) (interface{}, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableDate(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
