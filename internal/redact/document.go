package redact

import (
	"github.com/phantomsec/phantom/internal/detect"
	"github.com/phantomsec/phantom/internal/types"
)

// DocumentResult is the outcome of redacting a whole document in
// preserve-format mode.
type DocumentResult struct {
	Original       string                  `json:"original"`
	Redacted       string                  `json:"redacted"`
	RedactionCount int                     `json:"redaction_count"`
	Records        []types.RedactionRecord `json:"redaction_log"`
	Summary        types.RedactionSummary  `json:"summary"`
}

// Document detects and redacts content in preserve-format mode and
// derives the summary from the resulting ledger.
func Document(content string) DocumentResult {
	findings := detect.Scan(content)
	redacted, records := Apply(content, findings, true)
	return DocumentResult{
		Original:       content,
		Redacted:       redacted,
		RedactionCount: len(records),
		Records:        records,
		Summary:        Summarize(records),
	}
}

// SafeVersion returns content with every finding replaced by its
// per-kind marker, discarding value lengths entirely.
func SafeVersion(content string) string {
	findings := detect.Scan(content)
	redacted, _ := Apply(content, findings, false)
	return redacted
}

// ReportDetail is one entry in a redaction report, carrying only a
// bounded preview of the original value.
type ReportDetail struct {
	Kind     string         `json:"type"`
	Severity types.Severity `json:"severity"`
	Preview  string         `json:"preview"`
	Action   string         `json:"action"`
}

// Report summarizes what redaction would do to content without exposing
// full original values.
type Report struct {
	DocumentLength int                    `json:"document_length"`
	RedactedLength int                    `json:"redacted_length"`
	TotalFindings  int                    `json:"total_findings"`
	Summary        types.RedactionSummary `json:"summary"`
	Details        []ReportDetail         `json:"details"`
}

// BuildReport runs a preserve-format redaction over content and renders
// the ledger as a detail report with 10-character value previews.
func BuildReport(content string) Report {
	result := Document(content)
	report := Report{
		DocumentLength: len(content),
		RedactedLength: len(result.Redacted),
		TotalFindings:  result.RedactionCount,
		Summary:        result.Summary,
		Details:        make([]ReportDetail, 0, len(result.Records)),
	}
	for _, r := range result.Records {
		preview := r.Original
		if len(preview) > 10 {
			preview = preview[:10] + "..."
		}
		report.Details = append(report.Details, ReportDetail{
			Kind:     r.Kind,
			Severity: r.Severity,
			Preview:  preview,
			Action:   "REDACTED",
		})
	}
	return report
}
