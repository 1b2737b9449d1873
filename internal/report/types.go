// Package report persists the result of a scan as a small JSON document,
// so past runs can be listed and inspected later.
package report

import "time"

// RunReport records one completed scan.
type RunReport struct {
	RunID      string    `json:"runId"`              // short fingerprint of the run inputs
	Repo       string    `json:"repo"`               // repository location
	Target     string    `json:"target"`             // target file path
	Selector   string    `json:"selector,omitempty"` // sub-selector, when given
	Command    string    `json:"command"`            // effective verification command
	Found      bool      `json:"found"`              // whether a working revision was located
	Revision   string    `json:"revision,omitempty"` // winning revision identity
	Summary    string    `json:"summary,omitempty"`  // winning revision message summary
	RevisionAt time.Time `json:"revisionAt,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	Duration   string    `json:"duration"` // wall-clock scan duration
}

// RunSummary is a lightweight view for listing reports.
type RunSummary struct {
	RunID     string    `json:"runId"`
	Target    string    `json:"target"`
	Found     bool      `json:"found"`
	StartedAt time.Time `json:"startedAt"`
}
