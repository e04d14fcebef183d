// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Closed answer sets used by fixed-category metrics
const (
	AnswerYes            = "Yes"
	AnswerNo             = "No"
	AnswerUnsure         = "Unsure"
	AnswerPreferNotToSay = "Prefer not to say"
	AnswerPlanningTo     = "Planning To"
)

// Request types

type CheckSubmissionRequest struct {
	Email string `json:"email"`
}

type VerifyAccessRequest struct {
	Email string `json:"email"`
}

// SubmitRequest carries one respondent's full survey answers.
// Overwrite controls the guarded write: when true, any existing row for
// the same email fingerprint is deleted before the insert.
type SubmitRequest struct {
	Email                   string   `json:"email"`
	University              string   `json:"university"`
	OtherUniversity         string   `json:"other_university,omitempty"`
	SevisTerminated         string   `json:"sevis_terminated"`
	SevisTerminationDate    *string  `json:"sevis_termination_date"`
	SevisNotificationMethod string   `json:"sevis_notification_method,omitempty"`
	VisaRevoked             string   `json:"visa_revoked"`
	VisaRevocationDate      *string  `json:"visa_revocation_date"`
	StatusAtIncident        string   `json:"status_at_incident"`
	AcademicLevel           string   `json:"academic_level,omitempty"`
	TerminationReason       []string `json:"termination_reason,omitempty"`
	TerminationReasonOther  string   `json:"termination_reason_other,omitempty"`
	LinkedToLawEnforcement  string   `json:"linked_to_law_enforcement,omitempty"`
	IncidentType            string   `json:"incident_type,omitempty"`
	WasArrested             string   `json:"was_arrested,omitempty"`
	WasFingerprinted        string   `json:"was_fingerprinted,omitempty"`
	LegalCaseStatus         string   `json:"legal_case_status,omitempty"`
	H1BStatus               string   `json:"h1b_status,omitempty"`
	LegalConsultation       string   `json:"legal_consultation,omitempty"`
	ImmediatePlans          []string `json:"immediate_plans,omitempty"`
	ConsentToShare          bool     `json:"consent_to_share"`
	Overwrite               bool     `json:"overwrite"`
}

// Response types

type CheckSubmissionResponse struct {
	Exists      bool   `json:"exists"`
	Fingerprint string `json:"fingerprint"`
}

type SubmitResponse struct {
	SubmissionID string `json:"submission_id"`
	Fingerprint  string `json:"fingerprint"`
	Message      string `json:"message"`
}

type VerifyAccessResponse struct {
	Exists bool   `json:"exists"`
	Token  string `json:"token,omitempty"`
}

type StatsResponse struct {
	TotalSubmissions int `json:"total_submissions"`
	SevisTerminated  int `json:"sevis_terminated"`
	VisaRevoked      int `json:"visa_revoked"`
}

// NamedCount is one chart bar: a label and how many rows carry it.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TimelinePoint is one year-month bucket with independent counts for
// the two incident date columns.
type TimelinePoint struct {
	Name  string `json:"name"`
	Sevis int    `json:"sevis"`
	Visa  int    `json:"visa"`
}

// DashboardSummary bundles every dashboard metric into one payload.
// Each field degrades independently: a failed metric arrives as its
// documented default, never as a missing or error entry.
type DashboardSummary struct {
	Stats    StatsResponse           `json:"stats"`
	Timeline []TimelinePoint         `json:"timeline"`
	Metrics  map[string][]NamedCount `json:"metrics"`
}

// Domain types

type Submission struct {
	ID                      string    `json:"id"`
	IdentityFingerprint     string    `json:"-"` // Never expose in JSON
	University              string    `json:"university"`
	SevisTerminated         string    `json:"sevis_terminated"`
	SevisTerminationDate    *string   `json:"sevis_termination_date,omitempty"`
	SevisNotificationMethod string    `json:"sevis_notification_method,omitempty"`
	VisaRevoked             string    `json:"visa_revoked"`
	VisaRevocationDate      *string   `json:"visa_revocation_date,omitempty"`
	StatusAtIncident        string    `json:"status_at_incident"`
	AcademicLevel           string    `json:"academic_level,omitempty"`
	TerminationReason       []string  `json:"termination_reason,omitempty"`
	TerminationReasonOther  string    `json:"termination_reason_other,omitempty"`
	LinkedToLawEnforcement  string    `json:"linked_to_law_enforcement,omitempty"`
	IncidentType            string    `json:"incident_type,omitempty"`
	WasArrested             string    `json:"was_arrested,omitempty"`
	WasFingerprinted        string    `json:"was_fingerprinted,omitempty"`
	LegalCaseStatus         string    `json:"legal_case_status,omitempty"`
	H1BStatus               string    `json:"h1b_status,omitempty"`
	LegalConsultation       string    `json:"legal_consultation,omitempty"`
	ImmediatePlans          []string  `json:"immediate_plans,omitempty"`
	ConsentToShare          bool      `json:"consent_to_share"`
	CreatedAt               time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
