package core

import (
	"time"

	"github.com/google/uuid"
)

// Status classifies the terminal outcome of a single domain lookup.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusRegistered Status = "registered"
	StatusInvalid    Status = "invalid"
	StatusUnknown    Status = "unknown"
)

// LookupOutcome is produced exactly once per candidate and never mutated.
// StatusCode is zero when no HTTP response was observed.
type LookupOutcome struct {
	Status     Status `json:"status"`
	StatusCode int    `json:"status_code,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// ResultRecord pairs a candidate domain with its outcome. Domain holds a
// best-effort reconstruction when normalization rejected the label.
type ResultRecord struct {
	Domain  string        `json:"domain"`
	Prefix  string        `json:"prefix"`
	Suffix  string        `json:"suffix"`
	Outcome LookupOutcome `json:"outcome"`
}

// Summary counts records per status. Total always equals the sum of the
// four status counters.
type Summary struct {
	Total      int `json:"total"`
	Available  int `json:"available"`
	Registered int `json:"registered"`
	Invalid    int `json:"invalid"`
	Unknown    int `json:"unknown"`
}

// Summarize folds records into a Summary. Statuses outside the known set
// count as unknown so the total invariant holds for any input.
func Summarize(records []ResultRecord) Summary {
	summary := Summary{Total: len(records)}
	for _, record := range records {
		switch record.Outcome.Status {
		case StatusAvailable:
			summary.Available++
		case StatusRegistered:
			summary.Registered++
		case StatusInvalid:
			summary.Invalid++
		default:
			summary.Unknown++
		}
	}
	return summary
}

// Report is the unit the output layer renders: the ordered records of one
// run plus their summary.
type Report struct {
	RunID       string         `json:"run_id"`
	TLD         string         `json:"tld"`
	Records     []ResultRecord `json:"records"`
	Summary     Summary        `json:"summary"`
	CompletedAt time.Time      `json:"completed_at"`
}

// NewReport assembles a report for a finished run.
func NewReport(tld string, records []ResultRecord) *Report {
	return &Report{
		RunID:       uuid.New().String(),
		TLD:         tld,
		Records:     records,
		Summary:     Summarize(records),
		CompletedAt: time.Now().UTC(),
	}
}
