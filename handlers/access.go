// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/sevis-watch/auth"
	"github.com/danielhkuo/sevis-watch/cliparse"
	"github.com/danielhkuo/sevis-watch/middleware"
	"github.com/danielhkuo/sevis-watch/models"
)

type AccessHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccessHandler(db *sql.DB, cfg cliparse.Config) *AccessHandler {
	return &AccessHandler{db: db, cfg: cfg}
}

// Verify handles POST /dashboard/verify
// The dashboard gate: presence of a submission row matching the email's
// fingerprint counts as proof of prior participation and earns a session
// token for aggregate reads. A store failure is a denial - the check
// never falls back to granting access.
func (h *AccessHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyAccessRequest
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
		slog.Error("dashboard verification failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	if !exists {
		middleware.JSONResponse(w, http.StatusForbidden, models.VerifyAccessResponse{Exists: false})
		return
	}

	ttl := time.Duration(h.cfg.SessionTTLMinutes) * time.Minute
	token, err := auth.IssueSessionToken(fingerprint, h.cfg.SessionSecret, ttl)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	slog.Info("dashboard access granted",
		"fingerprint", auth.ShortenFingerprint(fingerprint, auth.FingerprintDisplayLen),
	)

	middleware.JSONResponse(w, http.StatusOK, models.VerifyAccessResponse{
		Exists: true,
		Token:  token,
	})
}
