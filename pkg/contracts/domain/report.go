// Package domain contains the report contract types shared by the
// extraction engine, the HTTP transport and the CSV exporter.
package domain

// ErrorKind classifies a validation error raised while extracting a report.
type ErrorKind string

const (
	// ErrorKindFile means the workbook buffer could not be decoded at all.
	// Fatal: no report data is produced.
	ErrorKindFile ErrorKind = "file"
	// ErrorKindSheet means a required sheet is absent. Fatal for the three
	// daily ledger sheets as a group, recoverable for the summary sheets.
	ErrorKindSheet ErrorKind = "sheet"
	// ErrorKindColumn means required columns stayed missing even at the
	// best header offset. Extraction continues with what mapped.
	ErrorKindColumn ErrorKind = "column"
	// ErrorKindTable means a required header row could not be located in a
	// sheet that does exist. The sub-table is reported as not found.
	ErrorKindTable ErrorKind = "table"
)

// ValidationError is a collected (never thrown) extraction problem with an
// optional detail list such as missing sheet or column names.
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Details []string  `json:"details,omitempty"`
}

// ReportBundle is the complete output of one extraction run. Summary is nil
// only when its anchor sheets were never consulted; its sub-sections carry
// their own found/missing flags otherwise. Daily is nil when any of the
// three daily sheets is missing.
type ReportBundle struct {
	Daily   *DailyLedger   `json:"daily"`
	Summary *SummaryReport `json:"summary,omitempty"`
}
