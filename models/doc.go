// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CheckSubmissionRequest: email
  - VerifyAccessRequest: email
  - SubmitRequest: email, survey answers, overwrite flag

# Response Types

Types for JSON responses:

  - CheckSubmissionResponse: exists, fingerprint (shortened)
  - SubmitResponse: id, message
  - VerifyAccessResponse: exists, token
  - StatsResponse: total_submissions, sevis_terminated, visa_revoked
  - NamedCount: name, count (one distribution entry)
  - TimelinePoint: name (month), sevis, visa
  - DashboardSummary: stats, timeline, metrics
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Submission: a stored survey response keyed by identity fingerprint

# Constants

Closed-set answer values:

	AnswerYes           = "Yes"
	AnswerNo            = "No"
	AnswerUnsure        = "Unsure"
	AnswerPreferNotToSay = "Prefer not to say"
	AnswerPlanningTo    = "Planning To"

Label tables for multi-valued answers live in labels.go:
TerminationReasonLabels and ImmediatePlanLabels map stable answer
identifiers to their display text; MapLabel resolves one identifier,
passing unknown values through verbatim.
*/
package models
