// Package biomarker integrates the external lab-biomarker scoring
// collaborator. The report structure is opaque apart from the executive
// summary consumed by prompt composition.
package biomarker

import "context"

// ExecutiveSummary is the only part of a report the chat pipeline reads.
type ExecutiveSummary struct {
	TopPriorities []string `json:"top_priorities,omitempty"`
}

// Report is a biomarker analysis result, either precomputed by the
// caller or produced by the analyzer.
type Report struct {
	ExecutiveSummary *ExecutiveSummary `json:"executive_summary,omitempty"`
}

// Analyzer scores raw biomarker input into a report.
type Analyzer interface {
	Analyze(ctx context.Context, input map[string]any) (*Report, error)
}
