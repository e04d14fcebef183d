// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// TerminationReasonLabels maps termination_reason category ids from the
// form to the readable labels shown on dashboard charts. Ids missing
// from the table pass through verbatim; never an error.
var TerminationReasonLabels = map[string]string{
	"ina-237-a-1-c-i":            "INA 237(a)(1)(C)(i) (Failure to maintain status)",
	"ina-237-a-4-c-i":            "INA 237(a)(4)(C)(i) (Foreign policy consequences)",
	"criminal-records-check":     "Criminal Records Check",
	"specific-criminal-activity": "Specific Criminal Activity",
	"protest-speech-activity":    "Protest/Speech Activity",
	"opt-cpt-violation":          "OPT/CPT Violation",
	"reason-unclear":             "Reason Unclear",
	"other":                      "Other",
	"no-termination":             "No Termination Yet",
}

// ImmediatePlanLabels maps immediate_plans category ids to chart labels.
var ImmediatePlanLabels = map[string]string{
	"reinstatement":         "Applying for SEVIS Reinstatement",
	"litigation":            "Exploring Litigation Options",
	"depart":                "Planning to Depart the U.S.",
	"transfer":              "Seeking Transfer to Another School",
	"other-visa":            "Exploring Other Visa Options",
	"waiting":               "Waiting / Undecided",
	"contacting-university": "Contacting University DSO/Officials",
}

// MapLabel resolves a category id against a label table, falling back
// to the raw id for anything unrecognized.
func MapLabel(labels map[string]string, id string) string {
	if labels == nil {
		return id
	}
	if name, ok := labels[id]; ok {
		return name
	}
	return id
}
