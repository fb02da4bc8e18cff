// Package detect scans text for sensitive information: financial
// identifiers, credentials and PII. Detection is stateless; each call
// returns fresh findings whose spans index the scanned text.
package detect

import (
	"regexp"

	"github.com/phantomsec/phantom/internal/types"
)

type pattern struct {
	kind     string
	re       *regexp.Regexp
	severity types.Severity
}

// Fixed pattern table. Order matters: findings are emitted per pattern in
// this order, then by position within the text. Label-style patterns
// (account, routing, password, api_key) fold the label into the match so
// the redactor rewrites the whole phrase.
var patterns = []pattern{
	{"credit_card", regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`), types.SevHigh},
	{"ssn", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), types.SevHigh},
	{"account_number", regexp.MustCompile(`(?i)\b(?:account\s*(?:number|no\.?|#)?|acct\s*#?)\s*:?\s*(\d{8,17})\b`), types.SevMed},
	{"routing_number", regexp.MustCompile(`(?i)\b(?:routing\s*(?:number|no\.?|#)?|rtg\s*#?|route\s*:?)\s*:?\s*(\d{9})\b`), types.SevMed},
	{"email", regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`), types.SevLow},
	{"password", regexp.MustCompile(`(?i)\b(?:password|pass|pwd)\s*:?\s*(\S+)\b`), types.SevHigh},
	{"api_key", regexp.MustCompile(`(?i)\b(?:api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*['"]?([A-Za-z0-9_-]{20,})['"]?\b`), types.SevHigh},
}

// Scan applies every pattern independently over the full text. Overlapping
// matches are possible and deliberately not deduplicated: a password line
// containing an email-shaped token yields two findings. Spans are byte
// offsets into text.
func Scan(text string) []types.Finding {
	var findings []types.Finding
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			findings = append(findings, types.Finding{
				Kind:     p.kind,
				Value:    text[loc[0]:loc[1]],
				Position: types.Span{loc[0], loc[1]},
				Severity: p.severity,
			})
		}
	}
	return findings
}

// SeverityFor returns the severity assigned to a pattern kind. Unknown
// kinds rank LOW.
func SeverityFor(kind string) types.Severity {
	for _, p := range patterns {
		if p.kind == kind {
			return p.severity
		}
	}
	return types.SevLow
}

// Kinds lists the pattern kinds in evaluation order.
func Kinds() []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, p.kind)
	}
	return out
}
