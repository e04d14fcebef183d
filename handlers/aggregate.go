// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/danielhkuo/sevis-watch/models"
)

// Metric describes one dashboard distribution over a submissions column.
type Metric struct {
	Column  string            // submissions column to aggregate
	Seed    []string          // closed category set, pre-seeded at zero; nil for open columns
	Labels  map[string]string // id → readable label for flattened columns
	Flatten bool              // column holds a JSON array; flatten across rows before counting
	TopN    int               // truncate to the N largest counts; 0 = unbounded
}

// Metrics is the family of independent dashboard queries, keyed by route
// name. Column names are fixed here and never come from request input.
var Metrics = map[string]Metric{
	"universities":         {Column: "university", TopN: 10},
	"statuses":             {Column: "status_at_incident"},
	"academic-levels":      {Column: "academic_level"},
	"h1b-statuses":         {Column: "h1b_status"},
	"legal-case-statuses":  {Column: "legal_case_status"},
	"incident-types":       {Column: "incident_type"},
	"notification-methods": {Column: "sevis_notification_method"},
	"termination-reasons":  {Column: "termination_reason", Flatten: true, Labels: models.TerminationReasonLabels},
	"immediate-plans":      {Column: "immediate_plans", Flatten: true, Labels: models.ImmediatePlanLabels},
	"law-enforcement": {Column: "linked_to_law_enforcement", Seed: []string{
		models.AnswerYes, models.AnswerNo, models.AnswerUnsure, models.AnswerPreferNotToSay,
	}},
	"legal-consultation": {Column: "legal_consultation", Seed: []string{
		models.AnswerYes, models.AnswerNo, models.AnswerPlanningTo,
	}},
	"arrests": {Column: "was_arrested", Seed: []string{
		models.AnswerYes, models.AnswerNo, models.AnswerUnsure,
	}},
	"fingerprinting": {Column: "was_fingerprinted", Seed: []string{
		models.AnswerYes, models.AnswerNo, models.AnswerUnsure,
	}},
}

// orderedCounter counts labels while preserving insertion order of first
// occurrence, which a plain map can't do.
type orderedCounter struct {
	order  []string
	counts map[string]int
}

func newOrderedCounter(seed []string) *orderedCounter {
	c := &orderedCounter{counts: make(map[string]int)}
	for _, name := range seed {
		c.order = append(c.order, name)
		c.counts[name] = 0
	}
	return c
}

func (c *orderedCounter) Add(name string) {
	if _, seen := c.counts[name]; !seen {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *orderedCounter) Entries() []models.NamedCount {
	entries := make([]models.NamedCount, 0, len(c.order))
	for _, name := range c.order {
		entries = append(entries, models.NamedCount{Name: name, Count: c.counts[name]})
	}
	return entries
}

// MetricDefault is the safe result when a metric's query fails: the
// zero-filled category set for closed metrics, an empty list otherwise.
func MetricDefault(m Metric) []models.NamedCount {
	if len(m.Seed) > 0 {
		return newOrderedCounter(m.Seed).Entries()
	}
	return []models.NamedCount{}
}

// ComputeMetric runs one distribution query and turns the rows into
// {name, count} pairs.
func ComputeMetric(db *sql.DB, m Metric) ([]models.NamedCount, error) {
	if m.Flatten {
		return computeFlattened(db, m)
	}
	return computeScalar(db, m)
}

func computeScalar(db *sql.DB, m Metric) ([]models.NamedCount, error) {
	rows, err := db.Query(fmt.Sprintf(`
		SELECT %s FROM submissions
		WHERE %s IS NOT NULL AND %s != ''
	`, m.Column, m.Column, m.Column))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", m.Column, err)
	}
	defer rows.Close()

	counter := newOrderedCounter(m.Seed)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", m.Column, err)
		}
		counter.Add(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", m.Column, err)
	}

	entries := counter.Entries()
	if m.TopN > 0 {
		entries = topByCount(entries, m.TopN)
	}
	return entries, nil
}

func computeFlattened(db *sql.DB, m Metric) ([]models.NamedCount, error) {
	rows, err := db.Query(fmt.Sprintf(`
		SELECT %s FROM submissions
		WHERE %s IS NOT NULL
	`, m.Column, m.Column))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", m.Column, err)
	}
	defer rows.Close()

	counter := newOrderedCounter(m.Seed)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", m.Column, err)
		}

		// Every row contributes one count per category id in its set
		var ids []string
		if err := json.Unmarshal(raw, &ids); err != nil {
			slog.Warn("skipping malformed array value", "column", m.Column, "error", err)
			continue
		}
		for _, id := range ids {
			counter.Add(models.MapLabel(m.Labels, id))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", m.Column, err)
	}

	return counter.Entries(), nil
}

// topByCount sorts descending by count and keeps the n largest entries.
// The sort is stable so ties keep their first-occurrence order.
func topByCount(entries []models.NamedCount, n int) []models.NamedCount {
	sorted := make([]models.NamedCount, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ComputeTimeline buckets both incident date columns by calendar
// year-month and merges them into one chronological sequence. Each entry
// carries independent sevis and visa counts. Sorting is on the parsed
// bucket date, not the "Jan 2006" display label, which would order
// alphabetically (Feb before Nov is wrong as a string compare).
func ComputeTimeline(db *sql.DB) ([]models.TimelinePoint, error) {
	type bucket struct {
		sevis int
		visa  int
	}
	buckets := make(map[time.Time]*bucket)

	collect := func(column string, count func(*bucket)) error {
		rows, err := db.Query(fmt.Sprintf(`
			SELECT %s FROM submissions
			WHERE %s IS NOT NULL AND %s != ''
			ORDER BY %s
		`, column, column, column, column))
		if err != nil {
			return fmt.Errorf("failed to query %s: %w", column, err)
		}
		defer rows.Close()

		for rows.Next() {
			var raw string
			if err := rows.Scan(&raw); err != nil {
				return fmt.Errorf("failed to scan %s: %w", column, err)
			}
			date, err := time.Parse("2006-01-02", raw)
			if err != nil {
				slog.Warn("skipping unparseable date", "column", column, "value", raw)
				continue
			}
			month := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
			b, ok := buckets[month]
			if !ok {
				b = &bucket{}
				buckets[month] = b
			}
			count(b)
		}
		return rows.Err()
	}

	if err := collect("sevis_termination_date", func(b *bucket) { b.sevis++ }); err != nil {
		return nil, err
	}
	if err := collect("visa_revocation_date", func(b *bucket) { b.visa++ }); err != nil {
		return nil, err
	}

	months := make([]time.Time, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	timeline := make([]models.TimelinePoint, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		timeline = append(timeline, models.TimelinePoint{
			Name:  month.Format("Jan 2006"),
			Sevis: b.sevis,
			Visa:  b.visa,
		})
	}
	return timeline, nil
}

// ComputeStats returns the headline counts for the dashboard header.
func ComputeStats(db *sql.DB) (models.StatsResponse, error) {
	var stats models.StatsResponse

	err := db.QueryRow(`SELECT COUNT(*) FROM submissions`).Scan(&stats.TotalSubmissions)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("failed to count submissions: %w", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM submissions WHERE sevis_terminated = $1
	`, models.AnswerYes).Scan(&stats.SevisTerminated)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("failed to count SEVIS terminations: %w", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM submissions WHERE visa_revoked = $1
	`, models.AnswerYes).Scan(&stats.VisaRevoked)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("failed to count visa revocations: %w", err)
	}

	return stats, nil
}
